package cli

import "flag"

const versionString = "1.0.0"
const defaultConfigPath = "./tangutlex.toml"
const exampleConfigPath = "./tangutlex.example.toml"

type cliOptions struct {
	configPath string
	dataset    string
	format     string
	ui         bool
	plain      bool
	noColor    bool
	toEnglish  string
	toScript   string
	watch      bool
	history    bool
	verbose    bool
	version    bool
	args       []string
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("tangutlex", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.dataset, "dataset", "", "Dataset file to load (overrides config)")
	fs.StringVar(&opts.format, "format", "", "Dataset format: json, yaml or toml (default: from file extension)")
	fs.BoolVar(&opts.ui, "ui", false, "Enable terminal UI mode")
	fs.BoolVar(&opts.plain, "plain", false, "Force the line-mode menu")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	fs.StringVar(&opts.toEnglish, "to-english", "", "Translate Tangut characters to English and exit")
	fs.StringVar(&opts.toScript, "to-script", "", "Translate English words to Tangut and exit")
	fs.BoolVar(&opts.watch, "watch", false, "Reload the dataset when its file changes")
	fs.BoolVar(&opts.history, "history", false, "Print recent queries from the history database and exit")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
