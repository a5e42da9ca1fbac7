package omdb

// envelope holds the fields common to every OMDb response
type envelope struct {
	Response string `json:"Response"` // "True" or "False"
	Error    string `json:"Error,omitempty"`
}

// ok reports whether the API answered with a positive result
func (e envelope) ok() bool {
	return e.Response == "True"
}

// SearchResponse is the body returned for ?s=<title>
type SearchResponse struct {
	envelope
	Search       []SearchItem `json:"Search,omitempty"`
	TotalResults string       `json:"totalResults,omitempty"`
}

// SearchItem is one summary row in a search response
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// TitleResponse is the body returned for ?i=<id>
type TitleResponse struct {
	envelope
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated,omitempty"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"` // "140 min" or "N/A"
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer,omitempty"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language,omitempty"`
	Country    string   `json:"Country,omitempty"`
	Awards     string   `json:"Awards,omitempty"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings,omitempty"`
	Metascore  string   `json:"Metascore,omitempty"`
	IMDbRating string   `json:"imdbRating"` // "8.2" or "N/A"
	IMDbVotes  string   `json:"imdbVotes,omitempty"`
	IMDbID     string   `json:"imdbID"`
	Type       string   `json:"Type,omitempty"`
}

// Rating is a third-party rating attached to a title
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}
