/*
Package stylesheet provides scoped style sheets.

Overview

Style sheets written for a scope use logical element names in their selectors.
Rewrite replaces these names for a scope and leaves every other byte of the
text as it is. Parsing is done by douceur (github.com/aymerick/douceur); it
checks style sheet text, splits sheets into rules and lists their
declarations. Access to parsed sheets is de-coupled by the interfaces
StyleSheet and Rule.

Constructable style sheets are modelled by type Sheet. A sheet may be
shared between scopes: every scope adopts it with Adopt and receives a view
with scoped selectors, which follows mutations of the original sheet:

    sheet := stylesheet.NewSheet()
    sheet.Replace("my-card { color: red }")
    view := stylesheet.Adopt(sheet, s, selectors)
    sheet.InsertRule("my-card > x-label { margin: 0 }", 1)
    view.CSSText()   // my-card-1 { … } my-card-1 > x-label-2 { … }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stylesheet

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.stylesheet'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.stylesheet")
}
