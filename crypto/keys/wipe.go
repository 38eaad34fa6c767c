package keys

import "runtime"

// wipe zeros key material once a signer has been derived from it.
func wipe(slices ...[]byte) {
	for _, data := range slices {
		for i := range data {
			data[i] = 0
		}
		runtime.KeepAlive(data)
	}
}
