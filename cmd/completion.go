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

const bashCompletion = `_sealstore() {
    local cur prev words cword
    _init_completion || return

    local commands="init keygen put get rm ls audit status passwd compact keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        put)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--id" -- "$cur"))
            else
                _filedir
            fi
            ;;
        get|rm)
            # Complete with object ids from the vault
            local ids
            ids=$(sealstore ls 2>/dev/null | sed -n 's/^  \([^ ]*\) (.*/\1/p')
            COMPREPLY=($(compgen -W "$ids" -- "$cur"))
            ;;
        keygen)
            COMPREPLY=($(compgen -W "--no-seal --keyring" -- "$cur"))
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

complete -F _sealstore sealstore
`

const zshCompletion = `#compdef sealstore

_sealstore() {
    local -a commands
    commands=(
        'init:Create a sealstore vault in current directory'
        'keygen:Generate the vault keypair'
        'put:Encrypt and store a file in the vault'
        'get:Decrypt and verify an object from the vault'
        'rm:Remove an object from the vault'
        'ls:List stored objects'
        'audit:Print the access trail'
        'status:Show comprehensive vault status'
        'passwd:Change the private key passphrase'
        'compact:Compact vault to reclaim disk space'
        'keyring:Manage passphrase in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'sealstore commands' commands
            ;;
        args)
            case "${words[2]}" in
                put)
                    _arguments \
                        '--id[Store under this object id]:id' \
                        '*:file:_files'
                    ;;
                get|rm)
                    _arguments '*:object:_sealstore_objects'
                    ;;
                keygen)
                    _arguments \
                        '--no-seal[Leave the private key unprotected]' \
                        '--keyring[Save the passphrase to the OS keyring]'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'sealstore commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_sealstore_objects() {
    local -a objects
    objects=(${(f)"$(sealstore ls 2>/dev/null | sed -n 's/^  \([^ ]*\) (.*/\1/p')"})
    _describe -t objects 'vault objects' objects
}

_sealstore "$@"
`

const fishCompletion = `# sealstore fish completions

set -l commands init keygen put get rm ls audit status passwd compact keyring help completion

complete -c sealstore -f

# Commands
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a sealstore vault'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a keygen -d 'Generate the vault keypair'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a put -d 'Encrypt and store a file'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a get -d 'Decrypt and verify an object'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove an object'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List stored objects'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a audit -d 'Print the access trail'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a passwd -d 'Change key passphrase'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage passphrase in OS keyring'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c sealstore -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# put flags and files
complete -c sealstore -n "__fish_seen_subcommand_from put" -l id -d 'Store under this object id'
complete -c sealstore -n "__fish_seen_subcommand_from put" -F

# keygen flags
complete -c sealstore -n "__fish_seen_subcommand_from keygen" -l no-seal -d 'Leave private key unprotected'
complete -c sealstore -n "__fish_seen_subcommand_from keygen" -l keyring -d 'Save passphrase to keyring'

# keyring subcommands
complete -c sealstore -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c sealstore -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c sealstore -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
