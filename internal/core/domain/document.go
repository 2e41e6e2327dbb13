package domain

// DocumentUnit is one retrievable chunk of corpus text, produced by the
// loader from a single source row. Units are immutable after index build.
type DocumentUnit struct {
	// Text is the canonical stringification of the source row
	Text string `json:"text"`

	// Source is the path of the file the unit was loaded from
	Source string `json:"source"`

	// Row is the 1-based data row number within Source
	Row int `json:"row"`
}
