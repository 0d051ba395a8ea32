package main

import (
	"log"

	"github.com/coinpass/be-content-platform/config"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/utils"
)

func main() {
	config.InitConfig()
	db := config.NewDB()

	// Seed the admin account
	hashedPassword, err := utils.HashPassword("changeme123!")
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO admin_users (email, password, token_version) VALUES (?, ?, 0)",
		"admin@coinpass.local", hashedPassword,
	); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Println("Seeded admin user: admin@coinpass.local")

	// Seed partner exchanges
	exchanges := []exchange.Exchange{
		{NameKo: "바이낸스", LogoImageURL: "", Benefit1TagKo: "수수료 할인", Benefit1ValueKo: "20%", Link: "https://www.binance.com"},
		{NameKo: "바이비트", LogoImageURL: "", Benefit1TagKo: "수수료 할인", Benefit1ValueKo: "20%", Link: "https://www.bybit.com"},
		{NameKo: "OKX", LogoImageURL: "", Benefit1TagKo: "수수료 할인", Benefit1ValueKo: "20%", Link: "https://www.okx.com"},
		{NameKo: "비트겟", LogoImageURL: "", Benefit1TagKo: "수수료 할인", Benefit1ValueKo: "50%", Link: "https://www.bitget.com"},
		{NameKo: "MEXC", LogoImageURL: "", Benefit1TagKo: "수수료 할인", Benefit1ValueKo: "50%", Link: "https://www.mexc.com"},
		{NameKo: "플립스터", LogoImageURL: "", Benefit1TagKo: "수수료 할인", Benefit1ValueKo: "100%", Link: "https://flipster.io"},
	}
	for _, ex := range exchanges {
		if _, err := db.Exec(`
			INSERT INTO exchange_exchanges
				(name_ko, logoimageurl, benefit1_tag_ko, benefit1_value_ko, link)
			VALUES (?, ?, ?, ?, ?)`,
			ex.NameKo, ex.LogoImageURL, ex.Benefit1TagKo, ex.Benefit1ValueKo, ex.Link,
		); err != nil {
			log.Fatalf("Failed to seed exchange %s: %v", ex.NameKo, err)
		}
		log.Printf("Seeded exchange: %s", ex.NameKo)
	}

	// Seed FAQ entries
	faqs := []faq.FAQ{
		{QuestionKo: "수수료 할인은 어떻게 받나요?", AnswerKo: "각 거래소 카드의 가입 링크로 계정을 만들면 자동으로 적용됩니다."},
		{QuestionKo: "기존 계정에도 적용되나요?", AnswerKo: "기존 계정에는 적용되지 않으며, 링크를 통한 신규 가입 계정에만 적용됩니다."},
		{QuestionKo: "할인은 언제까지 유효한가요?", AnswerKo: "거래소 정책이 바뀌지 않는 한 계속 유지됩니다."},
	}
	for _, f := range faqs {
		if _, err := db.Exec(
			"INSERT INTO exchange_faqs (question_ko, answer_ko) VALUES (?, ?)",
			f.QuestionKo, f.AnswerKo,
		); err != nil {
			log.Fatalf("Failed to seed FAQ: %v", err)
		}
	}
	log.Printf("Seeded %d FAQ entries", len(faqs))

	// Seed the hero headline
	heroContent := `{"title":"거래 수수료를 아끼는 가장 쉬운 방법\n최대 100% 수수료 페이백","subtitle":"국내 최대 거래소 제휴 혜택"}`
	if _, err := db.Exec(
		"INSERT INTO page_contents (page_type, content) VALUES (?, ?)",
		"main", heroContent,
	); err != nil {
		log.Fatalf("Failed to seed hero content: %v", err)
	}
	log.Println("Seeded hero content")

	// Seed a disabled default banner so the admin can flip it on
	if _, err := db.Exec(
		"INSERT INTO banners (page, enabled, image_url, content) VALUES (?, 0, '', '')",
		"index",
	); err != nil {
		log.Fatalf("Failed to seed banner: %v", err)
	}
	log.Println("Seeded default banner")
}
