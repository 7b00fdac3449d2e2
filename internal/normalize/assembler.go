package normalize

import (
	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// Assembler combines raw records with their decoded detail. It holds no
// state besides its Reporter and is safe for concurrent use when the
// Reporter is.
type Assembler struct {
	reporter Reporter
}

// NewAssembler constructs an Assembler. A nil reporter discards failures.
func NewAssembler(r Reporter) *Assembler {
	if r == nil {
		r = NopReporter{}
	}
	return &Assembler{reporter: r}
}

// Assemble decodes every record and returns the trips that decoded, in input
// order. Records that fail are reported and skipped. The result is never nil.
func (a *Assembler) Assemble(records []domain.RawTripRecord) []domain.Trip {
	trips := make([]domain.Trip, 0, len(records))
	for _, rec := range records {
		if t, ok := a.AssembleOne(rec); ok {
			trips = append(trips, t)
		}
	}
	return trips
}

// AssembleOne decodes a single record. ok is false when the record was
// dropped; the failure has already been reported.
func (a *Assembler) AssembleOne(rec domain.RawTripRecord) (trip domain.Trip, ok bool) {
	detail, err := Decode(rec.RawDetailBlob)
	if err != nil {
		a.reporter.Report(DecodeFailure{RecordID: rec.ID, Kind: KindOf(err), Err: err})
		return domain.Trip{}, false
	}

	images := make([]string, len(rec.ImageURLs))
	copy(images, rec.ImageURLs)

	return domain.Trip{
		ID:         rec.ID,
		TripDetail: detail,
		ImageURLs:  images,
	}, true
}
