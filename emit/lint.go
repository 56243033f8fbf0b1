// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emit

import "fmt"

// Finding is one non-fatal shape the linter flags: these never fail
// compilation (P4 already catches the fatal ones) but call out IR that
// likely indicates an authoring mistake upstream.
type Finding struct {
	Bundle, Unit string
	Location     string
	Message      string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s/%s @ %s: %s", f.Bundle, f.Unit, f.Location, f.Message)
}

// Lint scans a bundle document for suspicious but non-fatal shapes:
//   - an AndExpr with zero tests that isn't the unit's sole, default
//     conjunction (an "always fires" return point buried among others,
//     which shadows every return point ranked after it)
//   - a TestExpr the analyzer flagged IsDismissed, which a human author
//     likely intended to discriminate on and should double check
func Lint(doc BundleDoc) []Finding {
	var findings []Finding
	for _, u := range doc.Units {
		for i, rp := range u.Points {
			for _, and := range rp.Ands {
				if len(and.Tests) == 0 && !(len(u.Points) == 1 && i == 0) {
					findings = append(findings, Finding{
						Bundle: u.Bundle, Unit: u.Unit, Location: rp.Location,
						Message: "return point always fires; every return point ranked after it is unreachable",
					})
				}
				for _, t := range and.Tests {
					if t.Dismissed {
						findings = append(findings, Finding{
							Bundle: u.Bundle, Unit: u.Unit, Location: rp.Location,
							Message: fmt.Sprintf("test on key %q was dismissed as common to every conjunction of this return point", t.Key),
						})
					}
				}
			}
		}
	}
	return findings
}
