package dxdiag

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Diagnostic holds the facts extracted from the graphics diagnostic
// dump. Missing dump fields leave their value empty; the checks treat
// empty values as Fail.
type Diagnostic struct {
	DirectXVersion string `json:"directx_version"`
	DriverModel    string `json:"driver_model"`
	DeviceName     string `json:"device_name,omitempty"`
}

// DriverModelVersion returns the numeric segment of the driver model
// descriptor (2.7 from "WDDM 2.7") parsed as a decimal so comparisons
// are numeric, not lexical. The second result is false when no segment
// parses.
func (d Diagnostic) DriverModelVersion() (float64, bool) {
	for _, field := range strings.Fields(d.DriverModel) {
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// dumpDocument mirrors the slice of the dxdiag XML schema the bridge
// consumes: the negotiated DirectX version and the display device list.
type dumpDocument struct {
	XMLName           xml.Name `xml:"DxDiag"`
	SystemInformation struct {
		DirectXVersion string `xml:"DirectXVersion"`
	} `xml:"SystemInformation"`
	DisplayDevices struct {
		Devices []dumpDisplayDevice `xml:"DisplayDevice"`
	} `xml:"DisplayDevices"`
}

type dumpDisplayDevice struct {
	CardName    string `xml:"CardName"`
	DriverModel string `xml:"DriverModel"`
}

// parseDump extracts the Diagnostic from a dump document. Only path
// presence was validated before this point; fields the document lacks
// stay empty rather than erroring. When multiple display devices are
// enumerated only the first is used.
func parseDump(r io.Reader) (Diagnostic, error) {
	var doc dumpDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Diagnostic{}, err
	}

	diag := Diagnostic{
		DirectXVersion: strings.TrimSpace(doc.SystemInformation.DirectXVersion),
	}
	if len(doc.DisplayDevices.Devices) > 0 {
		first := doc.DisplayDevices.Devices[0]
		diag.DriverModel = strings.TrimSpace(first.DriverModel)
		diag.DeviceName = strings.TrimSpace(first.CardName)
	}
	return diag, nil
}
