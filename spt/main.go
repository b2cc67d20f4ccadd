package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/splitpot/splitpot/cmd"
)

func main() {
	// Shell completion runs (and exits) before anything else when the shell
	// asks for it.
	completer := &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
		},
		Sub: map[string]*complete.Command{
			"init":        {Flags: map[string]complete.Predictor{"n": predict.Nothing, "c": predict.Set{"EUR", "USD", "GBP", "CHF"}}},
			"fmt":         {},
			"import":      {Flags: map[string]complete.Predictor{"f": predict.Files("*.json"), "force": predict.Nothing}},
			"new-account": {Flags: map[string]complete.Predictor{"n": predict.Nothing, "d": predict.Nothing}},
			"new-clearing": {Flags: map[string]complete.Predictor{
				"n": predict.Nothing, "d": predict.Nothing, "share": predict.Nothing,
			}},
			"purchase": {Flags: map[string]complete.Predictor{
				"a": predict.Nothing, "by": predict.Nothing, "for": predict.Nothing,
				"item": predict.Nothing, "d": predict.Nothing, "m": predict.Nothing,
			}},
			"transfer": {Flags: map[string]complete.Predictor{
				"a": predict.Nothing, "from": predict.Nothing, "to": predict.Nothing,
				"d": predict.Nothing, "m": predict.Nothing,
			}},
			"balances": {},
			"history":  {Flags: map[string]complete.Predictor{"a": predict.Nothing}},
		},
	}
	completer.Complete("spt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
