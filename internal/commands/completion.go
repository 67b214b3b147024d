// Where: cli/internal/commands/completion.go
// What: Shell completion command implementation.
// Why: Complete subcommands and lifecycle event names for bash, zsh, and fish.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/poruru/sls-dart/cli/internal/lifecycle"
	"github.com/poruru/sls-dart/cli/internal/meta"
)

// CompletionCmd defines the structure for the completion command.
type CompletionCmd struct {
	Bash CompletionBashCmd `cmd:"" help:"Generate bash completion script"`
	Zsh  CompletionZshCmd  `cmd:"" help:"Generate zsh completion script"`
	Fish CompletionFishCmd `cmd:"" help:"Generate fish completion script"`
}

type (
	CompletionBashCmd struct{}
	CompletionZshCmd  struct{}
	CompletionFishCmd struct{}
)

func runCompletionBash(cli CLI, out io.Writer) int {
	commands, words := collectCompletionCommands(cli)

	var caseParts []string
	for _, cmd := range sortedKeys(words) {
		part := fmt.Sprintf(`        %s)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;`, cmd, strings.Join(words[cmd], " "))
		caseParts = append(caseParts, part)
	}

	script := `_%[1]s_completion() {
    local cur cmd
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    cmd="${COMP_WORDS[1]}"

    if [[ ${COMP_CWORD} -le 1 ]]; then
        COMPREPLY=( $(compgen -W "%[3]s" -- "${cur}") )
        return 0
    fi

    case "${cmd}" in
%[2]s
    esac
}
complete -F _%[1]s_completion %[1]s
`
	writeString(out, fmt.Sprintf(script, meta.Slug, strings.Join(caseParts, "\n"), strings.Join(commands, " ")))
	return 0
}

func runCompletionZsh(cli CLI, out io.Writer) int {
	commands, words := collectCompletionCommands(cli)

	var blocks strings.Builder
	for _, cmd := range sortedKeys(words) {
		fmt.Fprintf(&blocks, `  if [[ "${cmd}" == "%s" && $CURRENT -eq 3 ]]; then
    compadd -- %s
    return
  fi
`, cmd, strings.Join(words[cmd], " "))
	}

	script := `#compdef %[1]s
_%[1]s_completion() {
  local -a commands
  commands=(%[2]s)
  local cmd="${words[2]}"

  if [[ $CURRENT -eq 2 ]]; then
    compadd -- ${commands[@]}
    return
  fi

%[3]s}
_%[1]s_completion "$@"
`
	writeString(out, fmt.Sprintf(script, meta.Slug, strings.Join(commands, " "), blocks.String()))
	return 0
}

func runCompletionFish(cli CLI, out io.Writer) int {
	commands, words := collectCompletionCommands(cli)
	writeLine(out, fmt.Sprintf("complete -c %s -f -n \"__fish_use_subcommand\" -a \"%s\"", meta.Slug, strings.Join(commands, " ")))
	for _, cmd := range sortedKeys(words) {
		writeLine(out, fmt.Sprintf("complete -c %s -f -n \"__fish_seen_subcommand_from %s\" -a \"%s\"", meta.Slug, cmd, strings.Join(words[cmd], " ")))
	}
	return 0
}

// collectCompletionCommands returns top-level commands and, per command, the
// words accepted next: subcommand names, or event names for hook.
func collectCompletionCommands(cli CLI) ([]string, map[string][]string) {
	parser, _ := kong.New(&cli, cliVars())

	var commands []string
	words := make(map[string][]string)

	for _, node := range parser.Model.Children {
		if node.Hidden || strings.HasPrefix(node.Name, "__") {
			continue
		}
		commands = append(commands, node.Name)
		var subs []string
		for _, sub := range node.Children {
			if sub.Hidden || sub.Type != kong.CommandNode {
				continue
			}
			subs = append(subs, sub.Name)
		}
		if len(subs) > 0 {
			words[node.Name] = subs
		}
	}
	words["hook"] = append([]string(nil), lifecycle.Events...)

	return commands, words
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
