package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var movieDetails = map[string]map[string]string{
	"tt0372784": {
		"Response":   "True",
		"imdbID":     "tt0372784",
		"Title":      "Batman Begins",
		"Year":       "2005",
		"Released":   "15 Jun 2005",
		"Runtime":    "140 min",
		"Genre":      "Action, Crime, Drama",
		"Director":   "Christopher Nolan",
		"Actors":     "Christian Bale, Michael Caine",
		"Plot":       "After witnessing his parents' death, Bruce learns the art of fighting.",
		"Poster":     "N/A",
		"imdbRating": "8.2",
	},
	"tt1877830": {
		"Response":   "True",
		"imdbID":     "tt1877830",
		"Title":      "The Batman",
		"Year":       "2022",
		"Released":   "04 Mar 2022",
		"Runtime":    "176 min",
		"Genre":      "Action, Crime, Drama",
		"Director":   "Matt Reeves",
		"Actors":     "Robert Pattinson, Zoë Kravitz",
		"Plot":       "Batman ventures into Gotham City's underworld.",
		"Poster":     "https://img/batman.jpg",
		"imdbRating": "7.8",
	},
}

// testEnv is a config file pointing at a fake OMDb server and a temp data dir
type testEnv struct {
	t       *testing.T
	server  *httptest.Server
	dataDir string
	cfgFile string
	hits    atomic.Int32
}

func newTestEnv(t *testing.T, apiKey string) *testEnv {
	t.Helper()
	env := &testEnv{t: t}

	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.hits.Add(1)
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		if q.Get("apikey") == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
			return
		}

		switch {
		case q.Get("s") == "batman":
			json.NewEncoder(w).Encode(map[string]any{
				"Response":     "True",
				"totalResults": "2",
				"Search": []map[string]string{
					{"Title": "Batman Begins", "Year": "2005", "imdbID": "tt0372784", "Type": "movie", "Poster": "N/A"},
					{"Title": "The Batman", "Year": "2022", "imdbID": "tt1877830", "Type": "movie", "Poster": "https://img/batman.jpg"},
				},
			})
		case q.Get("s") != "":
			json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Movie not found!"})
		case movieDetails[q.Get("i")] != nil:
			json.NewEncoder(w).Encode(movieDetails[q.Get("i")])
		default:
			json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
		}
	}))
	t.Cleanup(env.server.Close)

	dir := t.TempDir()
	env.dataDir = filepath.Join(dir, "data")
	env.cfgFile = filepath.Join(dir, "config.yaml")

	cfg := fmt.Sprintf(`omdb:
  api_key: %q
  base_url: %q
  timeout: 5s
storage:
  dir: %q
logging:
  file: %q
  level: DEBUG
`, apiKey, env.server.URL+"/", env.dataDir, filepath.Join(dir, "cinelog.log"))
	require.NoError(t, os.WriteFile(env.cfgFile, []byte(cfg), 0600))

	return env
}

// run executes cinelog with args against the env's config, feeding stdin
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	a := &app{version: "1.2.3", in: strings.NewReader(stdin)}
	root := a.rootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.cfgFile}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
