package main

import (
	"github.com/lmorg/readline"
	"github.com/qiniu/log"

	"github.com/Harshini-Jesi/Evaluator"
)

// repl runs an interactive prompt until the user quits or input ends.
func repl(s *session, prompt string) {
	rl := readline.NewInstance()
	rl.SetPrompt(prompt)
	rl.TabCompleter = tab(s.ev)
	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl+C and Ctrl+D both end the session.
			log.Debugf("readline: %v", err)
			return
		}
		if !s.do(line) {
			return
		}
	}
}

func tab(ev *evaluator.Evaluator) func([]rune, int, readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	return func(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
		word, names := completions(ev, line, pos)
		return word, names, nil, readline.TabDisplayGrid
	}
}
