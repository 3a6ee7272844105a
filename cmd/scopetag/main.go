/*
Command scopetag rewrites markup and CSS for a scope.

It creates a chain of scopes of a given depth below the root scope, optionally
defines names in the innermost scope, and rewrites its input for that scope:

    scopetag markup --depth 2 < page.html
    scopetag css --define my-card < card.css
    scopetag css --rules < card.css     # list scoped rules and declarations
    scopetag markup --dom < page.html   # print the scoped DOM tree
    scopetag restore < scoped.html
    scopetag scopes --depth 3 --define x-a --define x-b

Configuration is read from scopetag.{yaml,toml,json} if --config is given.
Keys are scopedtags.minter, scopedtags.counter.start, scopedtags.marker,
scopedtags.register-at-use, and trace levels like trace.scopedtags.registry.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

const appName = "scopetag"

var (
	flagDepth  int
	flagDefine []string
	flagMinter string
	flagTrace  string
	flagConfig bool
	flagDOM    bool
	flagRules  bool
)

func init() {
	rootCmd.AddCommand(markupCmd, cssCmd, restoreCmd, scopesCmd)

	rootCmd.PersistentFlags().IntVarP(&flagDepth, "depth", "d", 1,
		"nesting depth of the scope to rewrite for (0 is the root scope)")
	rootCmd.PersistentFlags().StringArrayVar(&flagDefine, "define", nil,
		"logical name to define in the innermost scope (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagMinter, "minter", "",
		"strategy to mint concrete names: counter, random or uuid")
	rootCmd.PersistentFlags().StringVar(&flagTrace, "trace", "",
		"trace level for all tracers: Debug, Info or Error")
	rootCmd.PersistentFlags().BoolVar(&flagConfig, "config", false,
		"read configuration file "+appName+".* from the usual locations")
	markupCmd.Flags().BoolVar(&flagDOM, "dom", false,
		"print the scoped DOM tree instead of markup")
	cssCmd.Flags().BoolVar(&flagRules, "rules", false,
		"list the scoped rules with their declarations")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
