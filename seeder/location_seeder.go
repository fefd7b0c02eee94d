package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/repository"
)

func weekdays(openTime, closeTime string, days ...int) [7]models.OperatingDay {
	var hours [7]models.OperatingDay
	for _, d := range days {
		hours[d] = models.OperatingDay{Open: true, OpenTime: openTime, CloseTime: closeTime}
	}
	return hours
}

// SeedLocations memasukkan lokasi kerja dummy dengan geofence dan jam
// operasional mingguan.
func SeedLocations(locationRepo repository.LocationRepository) {
	log.Println("🌱 Memulai seeding lokasi...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locationsData := []models.Location{
		{
			Name:         "Toko Pusat Jakarta",
			Address:      "Jl. Sudirman No. 10, Jakarta",
			Latitude:     -6.208763,
			Longitude:    106.845599,
			RadiusMeters: 150,
			// Senin-Sabtu 08:00-21:00
			OperatingHours: weekdays("08:00", "21:00", 1, 2, 3, 4, 5, 6),
		},
		{
			Name:         "Cabang Bandung",
			Address:      "Jl. Braga No. 5, Bandung",
			Latitude:     -6.917464,
			Longitude:    107.619123,
			RadiusMeters: 100,
			// Setiap hari 09:00-20:00
			OperatingHours: weekdays("09:00", "20:00", 0, 1, 2, 3, 4, 5, 6),
		},
		{
			Name:         "Gudang Cikarang",
			Address:      "Kawasan Industri Jababeka, Cikarang",
			Latitude:     -6.284599,
			Longitude:    107.152481,
			RadiusMeters: 300,
			// Senin-Jumat 07:00-17:00
			OperatingHours: weekdays("07:00", "17:00", 1, 2, 3, 4, 5),
		},
	}

	for i := range locationsData {
		loc := &locationsData[i]
		existing, err := locationRepo.FindLocationByName(ctx, loc.Name)
		if err == nil && existing != nil {
			fmt.Printf("Skipping: Lokasi '%s' sudah ada.\n", loc.Name)
			continue
		}

		loc.ID = primitive.NewObjectID()
		loc.CreatedAt = time.Now()
		loc.UpdatedAt = time.Now()

		_, err = locationRepo.CreateLocation(ctx, loc)
		if err != nil {
			log.Printf("❌ Gagal menyimpan lokasi '%s': %v\n", loc.Name, err)
		} else {
			fmt.Printf("✔ Lokasi '%s' berhasil ditambahkan.\n", loc.Name)
		}
	}

	log.Println("✅ Seeding lokasi selesai.")
}
