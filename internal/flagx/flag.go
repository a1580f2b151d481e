// Package flagx lets independent config loaders each pick their own flags out
// of the shared command line without tripping over flags they do not define.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
//
// Recognized forms:
//
//	-c conf.json        flag and value as separate arguments
//	-config=conf.json   flag and value joined with '='
//	-v                  bare flag (next argument starts with '-')
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// StringFlag returns the value given to -short or -long in args, or "" when
// neither is present. The last occurrence wins.
func StringFlag(args []string, short, long string) string {
	var value string

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.StringVar(&value, long, "", "")
	fs.StringVar(&value, short, "", "")
	_ = fs.Parse(FilterArgs(args, []string{"-" + short, "-" + long}))

	return value
}

// JsonConfigFlags returns the config file path given with -c or -config.
func JsonConfigFlags() string {
	return StringFlag(os.Args[1:], "c", "config")
}

// EnvFileFlags returns the dotenv file path given with -e or -env.
func EnvFileFlags() string {
	return StringFlag(os.Args[1:], "e", "env")
}
