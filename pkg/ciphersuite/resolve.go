// Package ciphersuite computes the ordered list of TLS cipher suites a TLS
// context should offer.
//
// Inputs are the provider's default suite list, the provider's supported
// set, and three optional preferences from configuration: a blacklist, a
// whitelist and a priority ordering. Resolution runs in a fixed order:
//
//  1. Optionally drop suites failing the recommendation baseline and
//     substitute the static preferred order for a missing ordering
//  2. Append supported whitelist entries not already present
//  3. Remove blacklisted entries
//  4. Move entries named by the ordering to the front, in ordering order
//  5. Drop everything the provider does not support
//
// Every function in this package is pure and safe for concurrent use.
package ciphersuite

import (
	"slices"

	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
)

// Reason identifies the resolution step that removed a suite.
type Reason string

const (
	// ReasonRecommendation marks suites dropped by the recommendation baseline
	ReasonRecommendation Reason = "recommendation"
	// ReasonBlacklist marks suites dropped by the configured blacklist
	ReasonBlacklist Reason = "blacklist"
	// ReasonUnsupported marks suites the provider cannot use
	ReasonUnsupported Reason = "unsupported"
)

// Input holds one snapshot of resolution inputs.
//
// Supported is required. Blacklist, Whitelist and Ordering are optional: nil
// means "not configured". A non-nil empty Ordering is configured and
// performs no reordering.
type Input struct {
	Default                []string
	Supported              Set
	Blacklist              Set
	Whitelist              Set
	Ordering               []string
	AdjustByRecommendation bool
}

// Removal records one suite removed during resolution.
type Removal struct {
	Suite  string `json:"suite" yaml:"suite"`
	Reason Reason `json:"reason" yaml:"reason"`
}

// Resolution is the outcome of a resolution run.
type Resolution struct {
	// Suites is the final ordered list. Never nil.
	Suites []string `json:"suites" yaml:"suites"`
	// Injected lists whitelist entries appended to the working list.
	Injected []string `json:"injected,omitempty" yaml:"injected,omitempty"`
	// Removed lists suites dropped, in the order they were dropped.
	Removed []Removal `json:"removed,omitempty" yaml:"removed,omitempty"`
	// Ordering is the ordering applied in step 4, nil when none was.
	Ordering []string `json:"-" yaml:"-"`
}

// ComputeFinalList resolves the suite list for the given inputs. See Input
// for the meaning of nil arguments. A nil supported set is rejected with
// ErrNilSupportedSet. An empty result is not an error.
func ComputeFinalList(
	defaultList []string,
	supported Set,
	blacklist Set,
	whitelist Set,
	ordering []string,
	adjustByRecommendation bool,
) ([]string, error) {
	res, err := Explain(Input{
		Default:                defaultList,
		Supported:              supported,
		Blacklist:              blacklist,
		Whitelist:              whitelist,
		Ordering:               ordering,
		AdjustByRecommendation: adjustByRecommendation,
	})
	if err != nil {
		return nil, err
	}
	return res.Suites, nil
}

// Explain resolves the suite list and reports which step removed or added
// each suite along the way.
func Explain(in Input) (Resolution, error) {
	if in.Supported == nil {
		return Resolution{}, qerrors.NewPolicyError("resolve", qerrors.ErrNilSupportedSet)
	}

	var res Resolution
	ordering := in.Ordering

	list := make([]string, 0, len(in.Default)+len(in.Whitelist))
	if in.AdjustByRecommendation {
		for _, suite := range in.Default {
			if IsRecommended(suite) {
				list = append(list, suite)
			} else {
				res.drop(suite, ReasonRecommendation)
			}
		}
		ordering = ResolveOrdering(ordering)
	} else {
		list = append(list, in.Default...)
	}

	// Sorted so identical inputs always yield identical output.
	for _, suite := range in.Whitelist.Sorted() {
		if in.Supported.Contains(suite) && !slices.Contains(list, suite) {
			list = append(list, suite)
			res.Injected = append(res.Injected, suite)
		}
	}

	if in.Blacklist != nil {
		kept := list[:0]
		for _, suite := range list {
			if in.Blacklist.Contains(suite) {
				res.drop(suite, ReasonBlacklist)
				continue
			}
			kept = append(kept, suite)
		}
		list = kept
	}

	ordered := list
	if ordering != nil {
		res.Ordering = ordering
		ordered = make([]string, 0, len(list))
		for _, item := range ordering {
			if i := slices.Index(list, item); i >= 0 {
				list = slices.Delete(list, i, i+1)
				ordered = append(ordered, item)
			}
		}
		ordered = append(ordered, list...)
	}

	res.Suites = make([]string, 0, len(ordered))
	for _, suite := range ordered {
		if !in.Supported.Contains(suite) {
			res.drop(suite, ReasonUnsupported)
			continue
		}
		res.Suites = append(res.Suites, suite)
	}

	return res, nil
}

func (r *Resolution) drop(suite string, reason Reason) {
	r.Removed = append(r.Removed, Removal{Suite: suite, Reason: reason})
}

// RemovedBy returns the suites removed for reason, in removal order.
func (r Resolution) RemovedBy(reason Reason) []string {
	var out []string
	for _, rm := range r.Removed {
		if rm.Reason == reason {
			out = append(out, rm.Suite)
		}
	}
	return out
}
