package emulator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/vm16/cpu"
	"github.com/ezrec/vm16/monitor"
	"github.com/ezrec/vm16/program"
)

var (
	// Config errors
	ErrConfigMemory  = errors.New(f("memory size out of range"))
	ErrConfigLines   = errors.New(f("view lines negative"))
	ErrConfigAddress = errors.New(f("view address out of range"))
)

// Config is the vm16.toml console configuration.
type Config struct {
	Program string        `toml:"program"`
	Machine MachineConfig `toml:"machine"`
	Monitor MonitorConfig `toml:"monitor"`

	// Dir is the directory containing the configuration file (set at load time).
	Dir string `toml:"-"`
}

// MachineConfig sizes the machine.
type MachineConfig struct {
	Memory int `toml:"memory"`
}

// MonitorConfig selects what is dumped between instructions.
type MonitorConfig struct {
	Registers []string     `toml:"registers"`
	Views     []ViewConfig `toml:"view"`
	Step      bool         `toml:"step"`
	Quiet     bool         `toml:"quiet"`
}

// ViewConfig is a memory window, anchored on a register or an address.
type ViewConfig struct {
	Anchor  string `toml:"anchor"`
	Address *int   `toml:"address"`
	Offset  int    `toml:"offset"`
	Lines   int    `toml:"lines"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() (cfg *Config) {
	cfg = &Config{
		Machine: MachineConfig{Memory: DEFAULT_MEMORY_SIZE},
	}

	for _, reg := range monitor.DefaultRegisters {
		cfg.Monitor.Registers = append(cfg.Monitor.Registers, reg.String())
	}
	for _, v := range monitor.DefaultViews {
		cfg.Monitor.Views = append(cfg.Monitor.Views, ViewConfig{
			Anchor: v.Anchor.String(),
			Offset: v.Offset,
			Lines:  v.Lines,
		})
	}

	return
}

// LoadConfig parses a TOML configuration file.
// Settings missing from the file keep their default values.
func LoadConfig(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = ParseConfig(inf)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	return
}

// ParseConfig parses TOML configuration text.
func ParseConfig(r io.Reader) (cfg *Config, err error) {
	cfg = DefaultConfig()

	// Lists replace, rather than extend, the defaults.
	defaults := cfg.Monitor
	cfg.Monitor.Registers = nil
	cfg.Monitor.Views = nil

	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return
	}

	if !md.IsDefined("monitor", "registers") {
		cfg.Monitor.Registers = defaults.Registers
	}
	if !md.IsDefined("monitor", "view") {
		cfg.Monitor.Views = defaults.Views
	}

	if cfg.Machine.Memory < 0 || cfg.Machine.Memory > 0xFFFF {
		err = ErrConfigMemory
		return
	}

	return
}

// ProgramPath returns the program file path, relative to the configuration file.
func (cfg *Config) ProgramPath() string {
	if cfg.Program == "" || filepath.IsAbs(cfg.Program) || cfg.Dir == "" {
		return cfg.Program
	}
	return filepath.Join(cfg.Dir, cfg.Program)
}

// MemorySize resolves the memory size of the machine. The program's
// request overrides the configuration, and override, when not nil,
// overrides both.
func (cfg *Config) MemorySize(prog *program.Program, override *int) (size uint16, err error) {
	value := cfg.Machine.Memory
	if prog != nil && prog.Memory != 0 {
		value = prog.Memory
	}
	if override != nil {
		value = *override
	}

	if value < 0 || value > 0xFFFF {
		err = ErrConfigMemory
		return
	}

	size = uint16(value)
	return
}

// NewMonitor builds the register and memory dump observer.
func (cfg *Config) NewMonitor(out io.Writer) (mon *monitor.Monitor, err error) {
	mon = &monitor.Monitor{Output: out}

	for _, name := range cfg.Monitor.Registers {
		var reg cpu.Register
		reg, err = cpu.ParseRegister(name)
		if err != nil {
			return
		}
		mon.Registers = append(mon.Registers, reg)
	}

	for _, vc := range cfg.Monitor.Views {
		if vc.Lines < 0 {
			err = ErrConfigLines
			return
		}
		view := monitor.View{Offset: vc.Offset, Lines: vc.Lines}
		if vc.Address != nil {
			if *vc.Address < 0 || *vc.Address > 0xFFFF {
				err = ErrConfigAddress
				return
			}
			view.Absolute = true
			view.Address = uint16(*vc.Address)
		} else {
			view.Anchor, err = cpu.ParseRegister(vc.Anchor)
			if err != nil {
				return
			}
		}
		mon.Views = append(mon.Views, view)
	}

	return
}
