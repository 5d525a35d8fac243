package pond

import "sync"

// Mutasi populasi harus atomic per kolam: baca total, validasi, tulis event
// dan total baru tanpa interleaving penulis lain pada kolam yang sama.
// Lock per kolam, bukan lock global, supaya tambak yang tidak berhubungan
// tidak saling serialize.
//
// Entri tidak pernah dihapus: ukuran map dibatasi jumlah kolam yang pernah
// dimutasi selama proses hidup (satu mutex per kolam), bukan jumlah request.
var pondLocks sync.Map // pondID -> *sync.Mutex

func lockPond(pondID uint) func() {
	v, _ := pondLocks.LoadOrStore(pondID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
