package repl

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/gliderlabs/ssh"
	"golang.org/x/term"
)

const SSHIdleTimeout = 5 * time.Minute

// NewSSHServer serves a fresh Session to every SSH connection. Each session
// owns its board and search arena. With an empty hostKeyFile the server
// generates an ephemeral host key.
func NewSSHServer(addr, hostKeyFile string, cfg Config) (*ssh.Server, error) {
	server := &ssh.Server{
		Addr:        addr,
		IdleTimeout: SSHIdleTimeout,
		Handler: func(s ssh.Session) {
			_, _, isPty := s.Pty()
			if !isPty {
				io.WriteString(s, "non-interactive terminals are not supported\n")
				s.Exit(1)
				return
			}

			sessionCfg := cfg
			sessionCfg.Color = true
			sessionCfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

			terminal := term.NewTerminal(s, "> ")
			fmt.Fprintf(terminal, "Welcome %s. Type help for commands.\n", s.User())
			log.Printf("ssh session opened for %s from %s", s.User(), s.RemoteAddr())
			if err := NewSession(terminal, sessionCfg).Run(terminal); err != nil {
				log.Printf("ssh session for %s: %v", s.User(), err)
				s.Exit(1)
				return
			}
			s.Exit(0)
		},
	}

	if hostKeyFile != "" {
		if err := server.SetOption(ssh.HostKeyFile(hostKeyFile)); err != nil {
			return nil, err
		}
	}
	return server, nil
}
