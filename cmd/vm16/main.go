// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/vm16/emulator"
	"github.com/ezrec/vm16/monitor"
)

func main() {
	var progFile string
	var config string
	var memory int
	var step bool
	var quiet bool
	var verbose bool

	flag.StringVar(&progFile, "p", "", ".star program file to run")
	flag.StringVar(&config, "c", "", ".toml configuration file")
	flag.IntVar(&memory, "m", 0, "Memory size in bytes, overrides the program and config")
	flag.BoolVar(&step, "s", false, "Single step, waiting for Enter between instructions")
	flag.BoolVar(&quiet, "q", false, "Quiet, no register or memory dumps")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	// Flags override the configuration file.
	var memoryFlag *int
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "m":
			memoryFlag = &memory
		case "p":
			cfg.Program = progFile
			cfg.Dir = ""
		case "s":
			cfg.Monitor.Step = step
		case "q":
			cfg.Monitor.Quiet = quiet
		}
	})

	path := cfg.ProgramPath()
	if len(path) == 0 {
		log.Fatalf("%v: no program file, use -p or -c", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err := emu.LoadProgram(path)
	if err != nil {
		log.Fatal(err)
	}

	emu.MemorySize, err = cfg.MemorySize(emu.Program, memoryFlag)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if !cfg.Monitor.Quiet {
		mon, err := cfg.NewMonitor(os.Stdout)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		emu.Observers = append(emu.Observers, mon)
	}

	// Only pause when someone is at the keyboard.
	if cfg.Monitor.Step && term.IsTerminal(int(os.Stdin.Fd())) {
		emu.Observers = append(emu.Observers, &monitor.Stepper{Input: os.Stdin})
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%v: %d instructions", prog.Name, emu.Cpu.Ticks)
	}
}
