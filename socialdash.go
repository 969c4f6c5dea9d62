// Package socialdash provides descriptive analytics for the
// "Students Social Media Addiction" survey.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/socialdash/engine"
//	    "github.com/spektr-org/socialdash/helpers"
//	)
//
//	ds, err := helpers.LoadCSV("Students Social Media Addiction.csv")
//	result := engine.Apply(ds, engine.FullSelection(ds),
//	    engine.WithTheme("purples"),
//	)
//
// The loader reads the survey once; the engine filters it by gender,
// academic level and relationship status and returns render-ready output
// (KPIs, tables, chart configs). Rendering lives in the render and server
// packages. The engine never mutates the dataset.
package socialdash
