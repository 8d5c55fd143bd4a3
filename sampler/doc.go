// SPDX-License-Identifier: EPL-2.0

// Package sampler is the real-time drum sampler engine.
//
// An Engine holds one Store, the voices of the installed kit, behind a
// Gate. The audio thread calls Engine.Run once per block: it takes the
// gate, applies the block's note events, mixes every sounding voice into
// the stereo output and releases the gate. Run does not allocate and does
// no I/O.
//
// Kit changes go to a background worker. The worker decodes and converts
// the new kit with a Loader, then swaps it into the gate; the lock is held
// only for the swap, and the old store is released afterwards. Requests
// arriving while a load is running collapse into the latest one, and a
// request for the kit already installed is ignored.
//
// Voice gain and pan, the base note and the toggles are read each block
// from Controls the host connects to Ports. An unconnected gain is 0 dB
// and an unconnected pan is centred.
//
// Voices with several layers pick one from the voice's current gain, not
// the note velocity: the gain in dB is mapped to [0, 1] by
// 1 - gain/GainMin and the first layer whose [Min, Max) holds it plays.
package sampler
