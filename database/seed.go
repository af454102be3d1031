package database

import (
	"log"
	"time"

	"election-management-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedSampleData 创建示例数据（仅用于开发模式，数据库为空时执行）
func SeedSampleData(db *gorm.DB) {
	// 检查是否已有数据
	var count int64
	db.Model(&models.Election{}).Count(&count)
	if count > 0 {
		log.Println("数据库已有数据，跳过示例数据创建")
		return
	}

	log.Println("创建示例数据...")
	now := time.Now()

	// 进行中的选举
	active := models.Election{
		ID:          uuid.NewString(),
		Title:       "Student Council Election 2026",
		Description: "Annual election for student council positions.",
		StartDate:   now.Add(-5 * 24 * time.Hour),
		EndDate:     now.Add(10 * 24 * time.Hour),
		VoterCount:  100,
		TotalVotes:  54,
		Candidates: []models.Candidate{
			{ID: uuid.NewString(), Name: "Jane Smith", Position: "President", Bio: "Experienced leader with a track record of success.", Votes: 25},
			{ID: uuid.NewString(), Name: "John Doe", Position: "Vice President", Bio: "Passionate about innovation and technology.", Votes: 17},
			{ID: uuid.NewString(), Name: "Emily Johnson", Position: "Secretary", Bio: "Detail-oriented and efficient administrator.", Votes: 12},
		},
	}

	// 未开始的选举
	upcoming := models.Election{
		ID:          uuid.NewString(),
		Title:       "Faculty Board Election",
		Description: "Election for faculty board positions.",
		StartDate:   now.Add(7 * 24 * time.Hour),
		EndDate:     now.Add(21 * 24 * time.Hour),
		VoterCount:  50,
	}

	// 已结束的选举
	completed := models.Election{
		ID:          uuid.NewString(),
		Title:       "Club President Election",
		Description: "Election for the club president position.",
		StartDate:   now.Add(-30 * 24 * time.Hour),
		EndDate:     now.Add(-16 * 24 * time.Hour),
		VoterCount:  75,
		TotalVotes:  60,
		Candidates: []models.Candidate{
			{ID: uuid.NewString(), Name: "Michael Brown", Position: "President", Bio: "Dedicated to club growth and member engagement.", Votes: 32},
			{ID: uuid.NewString(), Name: "Sarah Wilson", Position: "President", Bio: "Focusing on innovation and inclusivity.", Votes: 28},
		},
	}

	for _, e := range []*models.Election{&active, &upcoming, &completed} {
		if err := db.Create(e).Error; err != nil {
			log.Printf("创建示例选举失败: %v", err)
			return
		}
	}

	// 示例选民，其中一位已在进行中的选举投过票
	voters := []models.Voter{
		{ID: uuid.NewString(), Name: "Alice Johnson", Email: "alice@example.com"},
		{ID: uuid.NewString(), Name: "Bob Smith", Email: "bob@example.com", HasVoted: true, ElectionID: &active.ID},
		{ID: uuid.NewString(), Name: "Carol White", Email: "carol@example.com"},
	}
	if err := db.Create(&voters).Error; err != nil {
		log.Printf("创建示例选民失败: %v", err)
		return
	}

	log.Println("示例数据创建成功")
}
