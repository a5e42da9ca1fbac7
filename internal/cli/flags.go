package cli

import (
	"github.com/spf13/pflag"
)

// listOptions selects which watched entries `watched list` prints
type listOptions struct {
	fuzzy string
	where string
}

func (o *listOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.fuzzy, "filter", "f", "", "fuzzy match on the title, best match first")
	fs.StringVarP(&o.where, "where", "w", "", "filter expression over id, title, year, userRating, criticRating, runtime")
}

// addOptions holds the flags of `watched add`
type addOptions struct {
	rating int
}

func (o *addOptions) addFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.rating, "rating", "r", 0, "your rating in stars")
}

// setupOptions holds the flags of `setup`
type setupOptions struct {
	apiKey     string
	skipVerify bool
}

func (o *setupOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.apiKey, "api-key", "", "OMDb API key (prompted for when omitted)")
	fs.BoolVar(&o.skipVerify, "skip-verify", false, "save the key without a test request")
}
