package ceeb

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// Meta header fields of a CEEB document.
type Meta struct {
	CompanyName string
	TaxID       string
	SubmittedBy string
	GeneratedAt time.Time
}

type xmlDocument struct {
	XMLName     xml.Name       `xml:"CeebSubmission"`
	Version     string         `xml:"version,attr"`
	GeneratedAt string         `xml:"generatedAt,attr"`
	Submitter   xmlSubmitter   `xml:"Submitter"`
	Inspections xmlInspections `xml:"Inspections"`
}

type xmlSubmitter struct {
	CompanyName string `xml:"CompanyName"`
	TaxID       string `xml:"NIP,omitempty"`
	Person      string `xml:"Person,omitempty"`
}

type xmlInspections struct {
	Count int             `xml:"count,attr"`
	Items []xmlInspection `xml:"Inspection"`
}

type xmlInspection struct {
	ID              int    `xml:"id,attr"`
	ProtocolNumber  string `xml:"ProtocolNumber"`
	Type            string `xml:"Type"`
	TypeLabel       string `xml:"TypeLabel"`
	Result          string `xml:"Result"`
	Date            string `xml:"Date"`
	Address         string `xml:"Building>Address"`
	City            string `xml:"Building>City"`
	PostalCode      string `xml:"Building>PostalCode"`
	Technician      string `xml:"Technician"`
	Defects         string `xml:"Defects,omitempty"`
	Recommendations string `xml:"Recommendations,omitempty"`
}

// BuildXML renders the CEEB submission document for inspections.
func BuildXML(inspections []domain.Inspection, meta Meta) ([]byte, error) {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}
	doc := xmlDocument{
		Version:     "1.0",
		GeneratedAt: meta.GeneratedAt.UTC().Format(time.RFC3339),
		Submitter: xmlSubmitter{
			CompanyName: meta.CompanyName,
			TaxID:       meta.TaxID,
			Person:      meta.SubmittedBy,
		},
		Inspections: xmlInspections{
			Count: len(inspections),
			Items: make([]xmlInspection, 0, len(inspections)),
		},
	}
	for _, in := range inspections {
		doc.Inspections.Items = append(doc.Inspections.Items, xmlInspection{
			ID:              in.ID,
			ProtocolNumber:  in.ProtocolNumber,
			Type:            string(in.Type),
			TypeLabel:       in.Type.Label(),
			Result:          string(in.Result),
			Date:            in.Date,
			Address:         in.Address,
			City:            in.City,
			PostalCode:      in.PostalCode,
			Technician:      in.Technician,
			Defects:         in.Defects,
			Recommendations: in.Recommendations,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal CEEB document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
