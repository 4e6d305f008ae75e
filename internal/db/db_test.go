package db

import (
	"path/filepath"
	"testing"

	"github.com/zulandar/motorpool/internal/config"
	"github.com/zulandar/motorpool/internal/models"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DBConfig
		want string
	}{
		{
			name: "default local",
			cfg: config.DBConfig{
				User: "root", Host: "127.0.0.1", Port: 3306, Database: "motorpool",
			},
			want: "root:@tcp(127.0.0.1:3306)/motorpool?parseTime=true&charset=utf8mb4",
		},
		{
			name: "with password and custom port",
			cfg: config.DBConfig{
				User: "mp", Password: "secret", Host: "10.0.0.5", Port: 3307, Database: "dispatch",
			},
			want: "mp:secret@tcp(10.0.0.5:3307)/dispatch?parseTime=true&charset=utf8mb4",
		},
	}
	for _, tt := range tests {
		if got := MySQLDSN(tt.cfg); got != tt.want {
			t.Errorf("%s: MySQLDSN = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motorpool.db")

	conn, err := Connect(config.DBConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := AutoMigrate(conn); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	rec := models.DispatchRecord{
		DispatchDate: "2025-12-05",
		VehicleID:    "軍-1234",
		VehiclePlate: "軍-1234",
		TaskName:     "線巡",
	}
	if err := conn.Create(&rec).Error; err != nil {
		t.Fatalf("create record: %v", err)
	}

	var got models.DispatchRecord
	if err := conn.First(&got, rec.ID).Error; err != nil {
		t.Fatalf("read record back: %v", err)
	}
	if got.VehiclePlate != "軍-1234" || got.TaskName != "線巡" {
		t.Errorf("record = %+v", got)
	}
}
