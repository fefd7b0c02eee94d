// Package notification mengirim pesan best-effort ke karyawan saat sesinya
// ditutup otomatis. Kegagalan kirim tidak boleh membatalkan mutasi absensi
// yang memicunya.
package notification

import "log"

// Sender mengirim satu pesan penutupan sesi. Implementasi nyata (email,
// push) tinggal memenuhi interface ini.
type Sender interface {
	SendAutoClose(userEmail, locationName, reason string)
}

// LogSender menulis notifikasi ke log aplikasi. Dipakai sebagai default
// sampai kanal pengiriman sungguhan dikonfigurasi.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendAutoClose(userEmail, locationName, reason string) {
	log.Printf("NOTIFIKASI: sesi %s di %s ditutup otomatis (%s)", userEmail, locationName, reason)
}
