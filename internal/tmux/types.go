package tmux

import (
	"os"
	"os/exec"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}

	lookPath = exec.LookPath

	getenv = os.Getenv
)

type tmuxClient interface {
	SwitchClient(*gotmux.SwitchClientOptions) error
	GetSessionByName(string) (*gotmux.Session, error)
	NewSession(*gotmux.SessionOptions) (*gotmux.Session, error)
	Close() error
}

type commander interface {
	Start() error
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Start() error {
	return r.cmd.Start()
}
