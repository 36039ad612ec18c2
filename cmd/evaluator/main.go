package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/qiniu/log"

	"github.com/Harshini-Jesi/Evaluator"
)

const usage = `usage: evaluator [options] [expression...]

Evaluates each expression in order. Without expressions, reads one expression
per line from the input file or stdin, with a prompt when stdin is a terminal.

options:
  -c file        load a JSON config file
  -p bits        precision of calculations in bits (default 64)
  -f verb        result formatting verb (default %g)
  -g name=value  define a variable; may be given any number of times
  -i file        read expressions from file, or stdin if file is -
  -j             print results as JSON lines
  -e             print the postfix form of each expression
  -v             print debug logs
  -h             print this help
`

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "c:p:f:g:i:jevh")
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		log.Fatal(err)
	}
	args := os.Args[optind:]

	conf := defaultConfig()
	// The config file goes first so that other options override it.
	for _, opt := range opts {
		if opt.Option == 'c' {
			if err := loadConfig(opt.Value, &conf); err != nil {
				log.Fatalf("loading config %s: %v", opt.Value, err)
			}
		}
	}
	var (
		inname string
		given  [][2]string
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'p':
			prec, err := strconv.ParseUint(opt.Value, 10, 32)
			if err != nil || prec == 0 {
				log.Fatalf("invalid precision %q", opt.Value)
			}
			conf.Prec = uint(prec)
		case 'f':
			conf.Format = opt.Value
		case 'g':
			d := strings.SplitN(opt.Value, "=", 2)
			if len(d) != 2 {
				log.Fatalf(`variable definitions must be "name=value", not %q`, opt.Value)
			}
			given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		case 'i':
			inname = opt.Value
		case 'j':
			conf.JSON = true
		case 'e':
			conf.Echo = true
		case 'v':
			conf.DebugLevel = log.Ldebug
		case 'h':
			fmt.Print(usage)
			return
		}
	}
	log.SetOutputLevel(conf.DebugLevel)
	if conf.Prec == 0 {
		log.Fatal("precision must be positive")
	}

	ev, err := setup(&conf, given)
	if err != nil {
		log.Fatal(err)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	s := newSession(ev, os.Stdout, &conf)

	switch {
	case inname != "":
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		lines(s, f)
	case len(args) == 0 && isatty.IsTerminal(os.Stdin.Fd()):
		repl(s, conf.Prompt)
	case len(args) == 0:
		lines(s, os.Stdin)
	}
	for _, arg := range args {
		s.do(arg)
	}
	if s.failed > 0 {
		os.Exit(1)
	}
}

// setup creates the evaluator with the variables from the config, in order
// of name, then those from the command line, in order. Each value is
// evaluated by the evaluator being set up, so it may refer to variables
// defined before it.
func setup(conf *Config, given [][2]string) (*evaluator.Evaluator, error) {
	ev := evaluator.New(evaluator.Prec(conf.Prec))
	names := make([]string, 0, len(conf.Vars))
	for nm := range conf.Vars {
		names = append(names, nm)
	}
	sort.Strings(names)
	defs := make([][2]string, 0, len(names)+len(given))
	for _, nm := range names {
		defs = append(defs, [2]string{nm, conf.Vars[nm]})
	}
	defs = append(defs, given...)
	for _, d := range defs {
		if !ev.Assignable(d[0]) {
			return nil, fmt.Errorf("setting %s: not a variable name", strconv.Quote(d[0]))
		}
		r, err := ev.Evaluate(d[1])
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", d[0], err)
		}
		ev.Set(d[0], r)
	}
	return ev, nil
}

// lines evaluates each line of in.
func lines(s *session, in io.Reader) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if !s.do(sc.Text()) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
}

func infile(inname string) (io.Reader, error) {
	if inname == "-" {
		return os.Stdin, nil
	}
	return os.Open(inname)
}
