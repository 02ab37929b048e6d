// Package source reads host data into [table.Raw].
//
// # Overview
//
// The layout engine consumes a [table.Raw]: ordered categories plus one group
// per series, each group carrying role-tagged measures. This package decodes
// that shape from three file formats so charts can be produced outside a
// dashboard host.
//
// # JSON Format
//
// JSON input is [table.Raw] as-is:
//
//	{
//	  "categories": ["Jan-21", "Feb-21"],
//	  "groups": [
//	    {"name": "North", "measures": [
//	      {"role": "Column Values", "values": [40, 60]},
//	      {"role": "Capacities", "values": [100]}
//	    ]}
//	  ]
//	}
//
// Values may be numbers, numeric strings or null.
//
// # Tabular Format (CSV and XLSX)
//
// Spreadsheets use a wide layout. The first row is a header: its first cell
// names the category column and every further cell is "Series" or
// "Series|Role". A missing role means Column Values. Each following row is a
// category label followed by one cell per header column:
//
//	Month,North,North|Capacities,South,South|Capacities
//	Jan-21,40,100,10,50
//	Feb-21,60,,30,
//
// Capacity and Line Values measures are read from their first row only, so
// their cells below the first row may be left empty. Headers naming the same
// series are merged into one group in order of first appearance.
//
// # Loading
//
// Use [Load] to read a file, picking the format from its extension, or
// [Read] with an explicit [Format] for any io.Reader.
package source
