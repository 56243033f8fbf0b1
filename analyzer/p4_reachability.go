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

package analyzer

import (
	"fmt"

	"github.com/dolthub/mtgc/errs"
	"github.com/dolthub/mtgc/ir"
)

// checkReachability is P4 (spec §4.4): P3's reduce step already drops any
// AndExpr it can prove self-contradictory, so a ReturnPoint with zero
// remaining AndExprs after P3 never fires at all -- its guard was
// unsatisfiable. checkReachability reports the first such return point, in
// source order, as UnreachableReturnStatement; any later ones are not named.
//
// This also doubles as the "nearest subsuming return" diagnostic
// (supplemented feature): when a return point vanishes entirely, the error
// names the next return point in source order that remains reachable, since
// that's the one now deciding the vanished return's former traffic.
func checkReachability(all []*ir.ReturnPoint, vanished []*ir.ReturnPoint) error {
	if len(vanished) == 0 {
		return nil
	}
	v := vanished[0]
	return errs.ErrUnreachableReturnStatement.New(v.Location.String(), nearestSubsuming(all, v))
}

func nearestSubsuming(all []*ir.ReturnPoint, vanished *ir.ReturnPoint) string {
	for _, rp := range all {
		if rp.Location.Offset > vanished.Location.Offset {
			return fmt.Sprintf(" (superseded by the return at %s)", rp.Location.String())
		}
	}
	return ""
}
