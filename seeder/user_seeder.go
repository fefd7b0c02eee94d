package seeder

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/repository"
)

// SeedUsers memasukkan satu admin dan sejumlah karyawan dummy dengan tarif
// per jam acak.
func SeedUsers(userRepo *repository.UserRepository) {
	log.Println("🌱 Memulai seeding user...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Gagal hash password: %v", err)
	}

	adminEmail := "admin.utama@gmail.com"
	adminUser, err := userRepo.FindUserByEmail(ctx, adminEmail)
	if err == nil && adminUser != nil {
		log.Println("✅ User admin sudah ada, seeding user admin dilewati.")
	} else {
		log.Println("🔄 Menambahkan user Admin...")
		newAdmin := &models.User{
			ID:           primitive.NewObjectID(),
			Name:         "Admin Utama",
			Email:        adminEmail,
			Password:     string(hashedPassword),
			Role:         "admin",
			Position:     "Manajer Operasional",
			HourlyRate:   75000,
			Address:      "Jl. Administrasi No. 1, Jakarta",
			IsFirstLogin: true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		_, err := userRepo.CreateUser(ctx, newAdmin)
		if err != nil {
			log.Printf("❌ Gagal menyimpan user admin: %v\n", err)
		} else {
			fmt.Printf("✔ User Admin (%s) berhasil ditambahkan.\n", newAdmin.Email)
		}
	}

	positions := []string{"Kasir", "Pramuniaga", "Barista", "Kepala Toko", "Staf Gudang", "Kurir", "Satpam"}
	firstNames := []string{"Budi", "Siti", "Agus", "Dewi", "Joko", "Sri", "Rina", "Andi", "Nur", "Hadi", "Kartika", "Eko", "Maya", "Dian", "Fajar", "Indra", "Putri", "Rizky", "Tia", "Wisnu"}
	lastNames := []string{"Santoso", "Wijaya", "Putra", "Utami", "Nugroho", "Rahayu", "Handayani", "Pratama", "Saputra", "Lestari", "Setiawan", "Wulandari", "Maulana", "Susanti", "Hartono", "Gunawan", "Hidayat"}
	cities := []string{"Jakarta", "Bandung", "Surabaya", "Yogyakarta", "Semarang", "Denpasar", "Medan", "Makassar"}

	log.Println("🔄 Menambahkan 20 user Karyawan...")
	for i := 1; i <= 20; i++ {
		email := fmt.Sprintf("karyawan%02d@gmail.com", i)
		existingUser, err := userRepo.FindUserByEmail(ctx, email)
		if err == nil && existingUser != nil {
			fmt.Printf("Skipping: User %s sudah ada.\n", email)
			continue
		}

		fullName := fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))])
		address := fmt.Sprintf("Jl. %s No. %d, %s", cities[rand.Intn(len(cities))], rand.Intn(100)+1, cities[rand.Intn(len(cities))])

		// Tarif per jam antara Rp 20.000 dan Rp 45.000, kelipatan seribu.
		hourlyRate := float64((rand.Intn(26) + 20) * 1000)

		newKaryawan := &models.User{
			ID:           primitive.NewObjectID(),
			Name:         fullName,
			Email:        email,
			Password:     string(hashedPassword),
			Role:         "karyawan",
			Position:     positions[rand.Intn(len(positions))],
			HourlyRate:   hourlyRate,
			Address:      address,
			IsFirstLogin: true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		_, err = userRepo.CreateUser(ctx, newKaryawan)
		if err != nil {
			log.Printf("❌ Gagal menyimpan user %s: %v\n", newKaryawan.Name, err)
		} else {
			fmt.Printf("✔ User %s (%s) berhasil ditambahkan.\n", newKaryawan.Name, newKaryawan.Position)
		}
	}

	log.Println("✅ Seeding user selesai.")
}
