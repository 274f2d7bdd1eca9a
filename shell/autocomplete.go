package shell

import "github.com/chzyer/readline"

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commandNames))
	for _, c := range commandNames {
		switch c {
		case "help":
			subs := make([]readline.PrefixCompleterInterface, 0, len(commandNames))
			for _, t := range commandNames {
				subs = append(subs, readline.PcItem(t))
			}
			items = append(items, readline.PcItem(c, subs...))
		case "set":
			items = append(items, readline.PcItem(c,
				readline.PcItem("heuristic"), readline.PcItem("aggregator"),
				readline.PcItem("kick-in"), readline.PcItem("near-depth"),
				readline.PcItem("far-depth"), readline.PcItem("endgame-tricks"),
				readline.PcItem("void-inference"), readline.PcItem("threads"),
				readline.PcItem("debug")))
		default:
			items = append(items, readline.PcItem(c))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
