package inline

import (
	"encoding/json"
	"io"
)

// Track is one resolved album track in the inline output.
type Track struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Mixtape is one resolved listing entry in the inline output.
type Mixtape struct {
	Artist string   `json:"artist"`
	Title  string   `json:"title"`
	Link   string   `json:"link"`
	Album  string   `json:"album,omitempty"`
	Tracks []*Track `json:"tracks"`
}

// Output is the top-level inline JSON document.
type Output struct {
	Query  string     `json:"query"`
	Result []*Mixtape `json:"result"`
}

func writeJson(out io.Writer, mixtapes []*Mixtape, options *Options) error {
	if mixtapes == nil {
		mixtapes = []*Mixtape{}
	}

	query := options.Query
	if query == "" {
		query = options.Category
	}

	data, err := json.Marshal(&Output{
		Query:  query,
		Result: mixtapes,
	})
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}
