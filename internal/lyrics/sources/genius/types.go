package genius

// Artist is the credited artist of a Genius song.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Song is the result object of a search hit.
type Song struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	FullTitle     string `json:"full_title"`
	URL           string `json:"url"`
	Language      string `json:"language"`
	PrimaryArtist Artist `json:"primary_artist"`
}

// Hit is one entry of a Genius search response.
type Hit struct {
	Type   string `json:"type"`
	Result Song   `json:"result"`
}

type searchResponse struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response struct {
		Hits []Hit `json:"hits"`
	} `json:"response"`
}

// Candidate is the search hit chosen for scraping.
type Candidate struct {
	URL      string
	Title    string
	Language string
	// PreRomanized is set when the hit is credited to the romanization
	// curation account, whose lyrics are already in Latin script.
	PreRomanized bool
}
