package ioparse

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/canerbagci/bgcatlas/internal/iofs"
	"github.com/canerbagci/bgcatlas/pkg/region"
)

// regionsJSPrefix precedes the JSON array of records in regions.js.
const regionsJSPrefix = "var recordData = "

// jsRecord is one record (contig) of regions.js.
type jsRecord struct {
	SeqID   string     `json:"seq_id"`
	Length  int        `json:"length"`
	Regions []jsRegion `json:"regions"`
}

type jsRegion struct {
	Anchor            string   `json:"anchor"`
	Start             int      `json:"start"`
	End               int      `json:"end"`
	Type              string   `json:"type"`
	ProductCategories []string `json:"product_categories"`
	Products          []string `json:"products"`
}

// ScanRegionsJS reads regions of one assembly from regions.js content.
// Only the first JavaScript variable is read, the rest of the file is
// ignored. Record IDs lose the assembly prefix. Records that do not match the expected layout are skipped
// and returned in the error slice. Records without regions produce no
// rows.
func ScanRegionsJS(
	r io.Reader,
	path, assembly string,
) ([]region.Region, []error, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, iofs.ReadFileError(path, err)
	}
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte(regionsJSPrefix)) {
		err = errors.New("no recordData variable")
		return nil, nil, RegionsJSError(path, err)
	}
	data = data[len(regionsJSPrefix):]

	var raw []json.RawMessage
	if err = json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, nil, RegionsJSError(path, err)
	}

	var res []region.Region
	var skipped []error
	for i, v := range raw {
		var rec jsRecord
		if err = json.Unmarshal(v, &rec); err != nil {
			skipped = append(skipped, RecordError(path, i, err))
			continue
		}
		for j, reg := range rec.Regions {
			res = append(res, region.Region{
				Assembly:          assembly,
				Contig:            region.ContigName(assembly, rec.SeqID),
				ContigLen:         rec.Length,
				ProductCategories: reg.ProductCategories,
				Anchor:            reg.Anchor,
				Start:             reg.Start,
				End:               reg.End,
				ContigEdge:        region.OnContigEdge(reg.Start, reg.End, rec.Length),
				Type:              reg.Type,
				Products:          reg.Products,
				Number:            j + 1,
			})
		}
	}
	return res, skipped, nil
}

// ReadRegionsJS reads regions of one assembly from a regions.js file.
func ReadRegionsJS(path, assembly string) ([]region.Region, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()
	return ScanRegionsJS(f, path, assembly)
}
