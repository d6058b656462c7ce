package chwardctl

import (
	"encoding/json"
	"io"

	"github.com/kakao/chward/internal/chwardctl/result"
)

// Print writes res as a single line of JSON, or indented JSON if pretty is
// set.
func Print(res *result.Result, pretty bool, writer io.Writer) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(res, "", "\t")
	} else {
		b, err = json.Marshal(res)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = writer.Write(b)
	return err
}
