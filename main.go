package main

import (
	"fmt"
	"os"

	"github.com/theramdev/deadbasic/pkg/configuration"
	"github.com/theramdev/deadbasic/pkg/console"
	"github.com/theramdev/deadbasic/pkg/deadbasic"
	"github.com/theramdev/deadbasic/pkg/logger"
)

func main() {
	// Initialize configuration before all other initializations.
	configPath := "settings.cfg"
	if err := configuration.Initialize(configPath); err != nil {
		fmt.Printf("Error initializing configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.ConfigInfo("interpreter started - configuration loaded from: %s", configPath)

	switch len(os.Args) {
	case 1:
		session := console.NewSession(os.Stdin, os.Stdout)
		if err := session.Run(); err != nil {
			logger.ConsoleError("session ended with error: %v", err)
			os.Exit(1)
		}
	case 2:
		interp := deadbasic.New(os.Stdout, os.Stdin)
		if err := interp.RunFile(os.Args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf("DeadBasic v%s\n", deadbasic.Version)
	fmt.Println("Usage:")
	fmt.Println("  deadbasic <program.ba>   run a script")
	fmt.Println("  deadbasic                interactive console (no multi-line while)")
	fmt.Println()
	fmt.Println("Decls: int x 5 | long big 999999 | double pi 3.14 | str name \"Ryan\"")
	fmt.Println("Cmds : printtext ... | showvars | openfile \"file.ba\" | add a b | input t v | help")
	fmt.Println("Flow : if/else/endif, while/endwhile, try/catch [errVar]/endtry")
	fmt.Println("Bodies are indented by ONE TAB or FOUR SPACES; comments start with # or ``")
}
