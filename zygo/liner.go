package zygo

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/glycerine/liner"
)

var completion_keywords = []string{`(`, `(apply `, `(attempt `, `(cons `, `(count `, `(def `, `(defmacro `, `(do `, `(first `, `(fn `, `(get `, `(hash-map `, `(if `, `(json `, `(let `, `(list `, `(list? `, `(loop `, `(map? `, `(next `, `(nil? `, `(not `, `(print `, `(println `, `(quote `, `(recur `, `(rest `, `(slurpf `, `(source `, `(split `, `(nsplit `, `(str `, `(symbol? `, `(unjson `, `(vector `, `(vector? `, `(* `, `(+ `, `(- `, `(/ `, `(< `, `(<= `, `(= `, `(> `, `(>= `}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zygohist"
	}
	return filepath.Join(home, ".zygohist")
}

// Prompter reads lines with editing, history and tab completion.
type Prompter struct {
	prompt   string
	prompter *liner.State
}

func NewPrompter(prompt string) *Prompter {
	p := &Prompter{
		prompt:   prompt,
		prompter: liner.NewLiner(),
	}

	p.prompter.SetCtrlCAborts(false)
	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range completion_keywords {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}
		return
	})

	if f, err := os.Open(historyFile()); err == nil {
		p.prompter.ReadHistory(f)
		f.Close()
	}
	return p
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if f, err := os.Create(historyFile()); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

// Getline shows prompt, or the default prompt when prompt is nil.
func (p *Prompter) Getline(prompt *string) (line string, err error) {
	if prompt == nil {
		line, err = p.prompter.Prompt(p.prompt)
	} else {
		line, err = p.prompter.Prompt(*prompt)
	}
	if err == nil {
		p.prompter.AppendHistory(line)
		return line, nil
	}
	return "", err
}
