// SPDX-License-Identifier: EPL-2.0

// Package mixing implements up-mix, down-mix and identity accumulation between
// blocks of different channel counts.
//
// A Mixer is chosen once from (source channels, target channels,
// interpretation) and then only ever adds into its output, so several sources
// feeding one input sum naturally:
//
//	out, _ := block.New(2, 128, 44100)
//	mixing.New(1, 2, mixing.Speakers).Mix(mono, out)
//	mixing.New(6, 2, mixing.Speakers).Mix(surround, out)
//
// With Speakers interpretation the standard mono/stereo/quad/5.1 rules apply.
// Discrete interpretation, or a pair without a rule, copies the first
// min(source, target) channels by index and ignores the rest.
package mixing
