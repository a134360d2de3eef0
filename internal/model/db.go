package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Profile{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Article{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Like{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Follow{}); err != nil {
		return err
	}

	return db.AutoMigrate(&Notification{})
}
