package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_textseal() {
    local cur prev words cword
    _init_completion || return

    local commands="encrypt decrypt profiles init put get rm ls status passwd diff compact keyring help completion"
    local profiles="aes-128-cbc aes-192-cbc aes-256-cbc aes-256-ctr blowfish-cbc chacha20 xchacha20"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    if [[ "$prev" == "--profile" ]]; then
        COMPREPLY=($(compgen -W "$profiles" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        encrypt|init)
            COMPREPLY=($(compgen -W "--profile" -- "$cur"))
            ;;
        decrypt)
            COMPREPLY=($(compgen -W "--profile --lenient" -- "$cur"))
            ;;
        put)
            if [[ "$prev" == "--file" ]]; then
                _filedir
            else
                COMPREPLY=($(compgen -W "--profile --file" -- "$cur"))
            fi
            ;;
        get|rm)
            local entries
            entries=$(textseal ls 2>/dev/null | grep -E '^  [^ ].* \[' | sed 's/^  //' | sed 's/ \[.*//')
            COMPREPLY=($(compgen -W "$entries" -- "$cur"))
            ;;
        diff)
            if [[ $cword -eq 2 ]]; then
                local entries
                entries=$(textseal ls 2>/dev/null | grep -E '^  [^ ].* \[' | sed 's/^  //' | sed 's/ \[.*//')
                COMPREPLY=($(compgen -W "$entries" -- "$cur"))
            else
                _filedir
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _textseal textseal
`

const zshCompletion = `#compdef textseal

_textseal() {
    local -a commands profiles
    commands=(
        'encrypt:Encrypt text to a base64 blob'
        'decrypt:Decrypt a base64 blob'
        'profiles:List cipher profiles'
        'init:Create a .textseal vault'
        'put:Seal text into the vault'
        'get:Print a sealed entry'
        'rm:Remove entries from the vault'
        'ls:Show vault status'
        'status:Show vault status'
        'passwd:Change vault password'
        'diff:Compare an entry with a local file'
        'compact:Compact vault to reclaim disk space'
        'keyring:Manage password in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )
    profiles=(aes-128-cbc aes-192-cbc aes-256-cbc aes-256-ctr blowfish-cbc chacha20 xchacha20)

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'textseal commands' commands
            ;;
        args)
            case "${words[2]}" in
                encrypt|init)
                    _arguments "--profile[Cipher profile]:profile:($profiles)"
                    ;;
                decrypt)
                    _arguments \
                        "--profile[Cipher profile]:profile:($profiles)" \
                        '--lenient[Print nothing instead of failing]'
                    ;;
                put)
                    _arguments \
                        "--profile[Cipher profile]:profile:($profiles)" \
                        '--file[Read text from file]:file:_files'
                    ;;
                get|rm)
                    _arguments '*:entry:_textseal_entries'
                    ;;
                diff)
                    _arguments '1:entry:_textseal_entries' '2:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'textseal commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_textseal_entries() {
    local -a entries
    entries=(${(f)"$(textseal ls 2>/dev/null | grep -E '^  [^ ].* \[' | sed 's/^  //' | sed 's/ \[.*//')"})
    _describe -t entries 'vault entries' entries
}

_textseal "$@"
`

const fishCompletion = `# textseal fish completions

set -l commands encrypt decrypt profiles init put get rm ls status passwd diff compact keyring help completion
set -l profiles aes-128-cbc aes-192-cbc aes-256-cbc aes-256-ctr blowfish-cbc chacha20 xchacha20

complete -c textseal -f

# Commands
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a encrypt -d 'Encrypt text'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a decrypt -d 'Decrypt a blob'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a profiles -d 'List cipher profiles'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a .textseal vault'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a put -d 'Seal text into the vault'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a get -d 'Print a sealed entry'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove entries'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a ls -d 'Show vault status'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a passwd -d 'Change vault password'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare entry with file'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage password in OS keyring'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c textseal -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# flags
complete -c textseal -n "__fish_seen_subcommand_from encrypt decrypt init put" -l profile -x -a "$profiles" -d 'Cipher profile'
complete -c textseal -n "__fish_seen_subcommand_from decrypt" -l lenient -d 'Print nothing instead of failing'
complete -c textseal -n "__fish_seen_subcommand_from put" -l file -r -F -d 'Read text from file'
complete -c textseal -n "__fish_seen_subcommand_from diff" -F

# keyring subcommands
complete -c textseal -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c textseal -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c textseal -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
