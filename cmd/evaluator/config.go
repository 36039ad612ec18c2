package main

import (
	"bytes"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/qiniu/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config of the evaluator command. Options given on the command line
// override the values loaded from a file.
type Config struct {
	Prec       uint   `json:"prec"`
	Format     string `json:"format"`
	JSON       bool   `json:"json"`
	Echo       bool   `json:"echo"`
	DebugLevel int    `json:"debug_level"`
	Prompt     string `json:"prompt"`
	// Vars maps variable names to expressions giving their initial values.
	Vars map[string]string `json:"vars"`
}

func defaultConfig() Config {
	return Config{
		Prec:       64,
		Format:     "%g",
		DebugLevel: log.Linfo,
		Prompt:     "> ",
	}
}

var (
	nl  = []byte{'\n'}
	ant = []byte{'#'}
)

// loadConfig reads a config file into conf. Fields missing from the file keep
// their values.
func loadConfig(name string, conf *Config) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return loadData(data, conf)
}

func loadData(data []byte, conf *Config) error {
	return json.Unmarshal(trimComments(data), conf)
}

// trimComments removes everything from a # outside of a string to the end of
// its line.
func trimComments(data []byte) []byte {
	lines := bytes.Split(data, nl)
	for k, line := range lines {
		lines[k] = trimCommentsLine(line)
	}
	return bytes.Join(lines, nl)
}

func trimCommentsLine(line []byte) []byte {
	if !bytes.Contains(line, ant) {
		return line
	}
	var r []byte
	quoted := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if quoted && i+1 < len(line) {
				r = append(r, line[i], line[i+1])
				i++
				continue
			}
		case '"':
			quoted = !quoted
		case '#':
			if !quoted {
				return r
			}
		}
		r = append(r, line[i])
	}
	return r
}
