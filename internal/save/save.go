// Package save encodes the market and turnover sections of a campaign save.
//
// Each section is a versioned JSON document. Loading is tolerant: unknown
// fields are ignored, missing fields default, and a malformed entry is
// logged and skipped. A section that cannot be decoded at all yields the
// default state together with ErrSaveDecode so campaign loading can go on.
package save

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/louisbranch/personnel.dynamics/internal/market"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/retirement"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Version is the document version written by this package.
const Version = 1

const dateLayout = "2006-01-02"

// ErrSaveDecode marks a section that could not be decoded.
var ErrSaveDecode = apperrors.New(apperrors.CodeSaveDecode, "save section could not be decoded")

// Logf receives skipped-entry reports; nil uses log.Printf.
type Logf func(format string, args ...any)

func (l Logf) printf(format string, args ...any) {
	if l == nil {
		log.Printf(format, args...)
		return
	}
	l(format, args...)
}

// MarketDocument is the persisted market section.
type MarketDocument struct {
	Version           int               `json:"version"`
	Style             string            `json:"style"`
	OfferingIncentive bool              `json:"offering_incentive,omitempty"`
	HasRare           bool              `json:"has_rare,omitempty"`
	RareProfessions   []json.RawMessage `json:"rare_professions,omitempty"`
	Rolls             int               `json:"rolls,omitempty"`
	Applicants        []json.RawMessage `json:"applicants,omitempty"`
	LastFilter        int               `json:"last_filter,omitempty"`
}

// TrackerDocument is the persisted turnover section.
type TrackerDocument struct {
	Version int `json:"version"`
	// RollRequired is a comma delimited list of mission ids. Mission ids
	// containing a comma cannot be encoded.
	RollRequired string            `json:"roll_required,omitempty"`
	Unresolved   []json.RawMessage `json:"unresolved,omitempty"`
	Payouts      []json.RawMessage `json:"payouts,omitempty"`
	LastRoll     string            `json:"last_roll,omitempty"`
}

// UnresolvedEntry lists the people of one mission awaiting settlement.
type UnresolvedEntry struct {
	Mission string   `json:"mission"`
	People  []string `json:"people"`
}

// PayoutEntry is one pending payout.
type PayoutEntry struct {
	Person string `json:"person"`
	retirement.Payout
}

// EncodeMarket writes the market section. Derived fields are not stored.
func EncodeMarket(s market.State) ([]byte, error) {
	doc := MarketDocument{
		Version:           Version,
		Style:             string(s.Style),
		OfferingIncentive: s.OfferingIncentive,
		HasRare:           s.HasRare,
		Rolls:             s.Rolls,
		LastFilter:        s.LastFilter,
	}
	for _, p := range s.RareProfessions {
		raw, err := json.Marshal(string(p))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSaveEncode, fmt.Sprintf("encode rare profession %s", p), err)
		}
		doc.RareProfessions = append(doc.RareProfessions, raw)
	}
	for _, p := range s.Applicants {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSaveEncode, fmt.Sprintf("encode applicant %s", p.ID), err)
		}
		doc.Applicants = append(doc.Applicants, raw)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSaveEncode, "encode market section", err)
	}
	return data, nil
}

// DefaultMarket is the state of a market whose section is missing or broken.
func DefaultMarket() market.State {
	return market.State{Style: market.StyleDisabled}
}

// DecodeMarket reads the market section. Empty input yields the default
// state without error.
func DecodeMarket(data []byte, logf Logf) (market.State, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return DefaultMarket(), nil
	}
	var doc MarketDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		err = apperrors.Wrap(apperrors.CodeSaveDecode, "decode market section", err)
		logf.printf("%s", apperrors.LogLine(err))
		return DefaultMarket(), err
	}
	if err := checkVersion(doc.Version); err != nil {
		logf.printf("%s", apperrors.LogLinef(err, "save: market section"))
		return DefaultMarket(), err
	}

	s := market.State{
		Style:             market.Style(doc.Style),
		OfferingIncentive: doc.OfferingIncentive,
		HasRare:           doc.HasRare,
		Rolls:             doc.Rolls,
		LastFilter:        doc.LastFilter,
	}
	if s.Style == "" {
		s.Style = market.StyleDisabled
	}
	for i, raw := range doc.RareProfessions {
		var p string
		if err := json.Unmarshal(raw, &p); err != nil || strings.TrimSpace(p) == "" {
			logf.printf("save: skip rare profession %d: malformed entry", i)
			continue
		}
		s.RareProfessions = append(s.RareProfessions, roster.Profession(p).Normalize())
	}
	for i, raw := range doc.Applicants {
		var p roster.Person
		if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
			logf.printf("save: skip applicant %d: malformed entry", i)
			continue
		}
		s.Applicants = append(s.Applicants, &p)
	}
	return s, nil
}

// EncodeTracker writes the turnover section.
func EncodeTracker(s retirement.State) ([]byte, error) {
	for _, id := range s.RollRequired {
		if strings.Contains(id, ",") {
			return nil, apperrors.WithMetadata(apperrors.CodeSaveEncode, "mission id contains a comma", map[string]string{
				"mission_id": id,
			})
		}
	}
	doc := TrackerDocument{
		Version:      Version,
		RollRequired: strings.Join(s.RollRequired, ","),
	}
	if !s.LastRoll.IsZero() {
		doc.LastRoll = s.LastRoll.Format(dateLayout)
	}
	for _, mission := range slices.Sorted(maps.Keys(s.Unresolved)) {
		raw, err := json.Marshal(UnresolvedEntry{Mission: mission, People: s.Unresolved[mission]})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSaveEncode, fmt.Sprintf("encode unresolved %s", mission), err)
		}
		doc.Unresolved = append(doc.Unresolved, raw)
	}
	for _, person := range slices.Sorted(maps.Keys(s.Payouts)) {
		raw, err := json.Marshal(PayoutEntry{Person: person, Payout: s.Payouts[person]})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSaveEncode, fmt.Sprintf("encode payout %s", person), err)
		}
		doc.Payouts = append(doc.Payouts, raw)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSaveEncode, "encode turnover section", err)
	}
	return data, nil
}

// DecodeTracker reads the turnover section. Empty input yields an empty
// state without error.
func DecodeTracker(data []byte, logf Logf) (retirement.State, error) {
	empty := retirement.State{Unresolved: map[string][]string{}, Payouts: map[string]retirement.Payout{}}
	if len(strings.TrimSpace(string(data))) == 0 {
		return empty, nil
	}
	var doc TrackerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		err = apperrors.Wrap(apperrors.CodeSaveDecode, "decode turnover section", err)
		logf.printf("%s", apperrors.LogLine(err))
		return empty, err
	}
	if err := checkVersion(doc.Version); err != nil {
		logf.printf("%s", apperrors.LogLinef(err, "save: turnover section"))
		return empty, err
	}

	s := empty
	for _, id := range strings.Split(doc.RollRequired, ",") {
		if id = strings.TrimSpace(id); id != "" {
			s.RollRequired = append(s.RollRequired, id)
		}
	}
	for i, raw := range doc.Unresolved {
		var entry UnresolvedEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Mission == "" {
			logf.printf("save: skip unresolved entry %d: malformed entry", i)
			continue
		}
		s.Unresolved[entry.Mission] = append(s.Unresolved[entry.Mission], entry.People...)
	}
	for i, raw := range doc.Payouts {
		var entry PayoutEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Person == "" {
			logf.printf("save: skip payout %d: malformed entry", i)
			continue
		}
		s.Payouts[entry.Person] = entry.Payout
	}
	if doc.LastRoll != "" {
		date, err := time.Parse(dateLayout, doc.LastRoll)
		if err != nil {
			logf.printf("save: ignore last roll %q: %v", doc.LastRoll, err)
		} else {
			s.LastRoll = date
		}
	}
	return s, nil
}

// checkVersion accepts the current version and version 0, written before
// documents carried one.
func checkVersion(v int) error {
	if v == 0 || v == Version {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeSaveDecode, "unsupported document version", map[string]string{
		"version": fmt.Sprint(v),
	})
}
