// Package flagx lets several independent loaders share one command line.
// Each loader picks out only the flags it owns, so an unknown flag meant for
// another loader can not break its parse.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// As with the standard flag package, "-name" and "--name" are the same flag,
// so allowedFlags may list either spelling. Arguments after a bare "--" are
// never flags and are dropped.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[normalize(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[normalize(name)]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[normalize(arg)]; ok {
			filtered = append(filtered, arg)
			// a following non-flag token is this flag's value
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// It returns "" when neither flag is present; the last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

func normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
