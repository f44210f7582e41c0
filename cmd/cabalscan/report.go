package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/jpl-au/cabalscan/version"
)

// result is one reported document. In JSON output it is a single line.
type result struct {
	File    string          `json:"file"`
	Version version.Version `json:"version"`
	Digest  string          `json:"digest,omitempty"`
	Cached  bool            `json:"cached,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type reporter struct {
	w   io.Writer
	enc *json.Encoder
}

func (a *app) reporter(w io.Writer) *reporter {
	r := &reporter{w: w}
	if a.cfg.Format == formatJSON {
		r.enc = json.NewEncoder(w)
	}
	return r
}

func (r *reporter) emit(res result) error {
	if r.enc != nil {
		return r.enc.Encode(res)
	}
	var err error
	if res.Error != "" {
		_, err = fmt.Fprintf(r.w, "%s\terror: %s\n", res.File, res.Error)
	} else {
		_, err = fmt.Fprintf(r.w, "%s\t%s\n", res.File, res.Version)
	}
	return err
}
