// Package bounce models a ball dropped from rest that keeps a fixed fraction
// of its height on every bounce. All functions are pure; a Model only carries
// configuration.
//
// Overview
//
//   - Inputs (Params):
//     Height     : drop height in metres, > 0
//     HeightMin  : height of interest in metres, 0 < HeightMin < Height
//     Eta        : bounce efficiency, 0 < Eta < 1; apex(n+1) = Eta * apex(n)
//
//   - Config:
//     Gravity    : m/s², default 9.81
//     Samples    : trajectory points per half-parabola, default 100
//
//   - Operations:
//     TimeForBounce(h) : √(2h/g), fall time from h or rise time to h
//     Bounces(p)       : apexes strictly above HeightMin and the time until
//     the ball lands after the last of them
//     Simulate(p)      : Validate + Bounces
//     Segments(p)      : the fall/rise half-parabolas, ending with the fall
//     from the first apex below HeightMin
//     Trajectory(p)    : Samples points per segment, concatenated
//     Impacts(p)       : floor contacts with impact speeds
//
//   - Errors (errs.go):
//     ErrNotNumber, ErrHeight, ErrHeightMin, ErrEta, ErrGravity
//
// # Counting convention
//
// The initial drop is not a bounce, so counting starts at -1. The final pass of
// the loop reaches an apex that does not clear HeightMin: it adds no bounce but
// its rise time is subtracted again so that TotalTime ends at the last landing.
// Trajectory still plots that last rise and fall.
package bounce
