package shell

import (
	"embed"
	"strings"
)

//go:embed helptext
var helptext embed.FS

var commandNames = []string{
	"deal", "show", "next", "trick", "auto", "play", "belief", "solve",
	"set", "sweep", "help", "exit",
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	topic := "usage"
	if len(cmd.args) > 0 {
		topic = strings.ToLower(cmd.args[0])
	}
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return msg("There is no help text for the topic " + topic), nil
	}
	return msg(string(dat)), nil
}
