package zygo

import "fmt"

// version information, set with -ldflags -X at build time.
var GITLASTTAG string
var GITLASTCOMMIT string

func Version() string {
	return fmt.Sprintf("%s/%s", GITLASTTAG, GITLASTCOMMIT)
}
