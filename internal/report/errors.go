package report

import "errors"

// ErrIncompleteScores is returned by Build when one of the four scores is
// missing.
var ErrIncompleteScores = errors.New("report requires all four scores")
