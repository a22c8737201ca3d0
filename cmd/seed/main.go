// 种子数据工具：通过 HTTP 接口向运行中的服务灌入演示数据，
// 走正常的报名/签到/反馈流程，任何一步失败直接退出
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	resty "github.com/go-resty/resty/v2"
)

type apiResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   string         `json:"error"`
	Code    string         `json:"code"`
}

var client *resty.Client

func post(path string, body any) (map[string]any, error) {
	var result apiResponse
	resp, err := client.R().
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(path)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("POST %s: %d %s (%s)", path, resp.StatusCode(), result.Error, result.Code)
	}
	return result.Data, nil
}

// createdID 取创建响应里的自增 id
func createdID(data map[string]any) uint {
	id, _ := data["id"].(float64)
	return uint(id)
}

type collegeSeed struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type studentSeed struct {
	CollegeIdx int    // colleges 切片下标，发请求前换成真实 id
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Year       string `json:"year"`
	Department string `json:"department"`
}

type eventSeed struct {
	CollegeIdx      int
	Title           string
	Description     string
	EventType       string
	DaysFromNow     int // 开始时间相对今天的偏移，保证报名窗口开放
	DurationHours   int
	Location        string
	MaxParticipants int
}

var colleges = []collegeSeed{
	{"Tech University", "TU"},
	{"Engineering College", "EC"},
	{"Business School", "BS"},
	{"Medical College", "MC"},
	{"Arts University", "AU"},
}

var students = []studentSeed{
	{0, "TU001", "Alice Johnson", "alice.johnson@tu.edu", "+1234567890", "2024", "Computer Science"},
	{0, "TU002", "Bob Smith", "bob.smith@tu.edu", "+1234567891", "2023", "Computer Science"},
	{0, "TU003", "Carol Davis", "carol.davis@tu.edu", "+1234567892", "2024", "Information Technology"},
	{0, "TU004", "David Wilson", "david.wilson@tu.edu", "+1234567893", "2022", "Computer Science"},
	{0, "TU005", "Eva Brown", "eva.brown@tu.edu", "+1234567894", "2024", "Data Science"},
	{1, "EC001", "Frank Miller", "frank.miller@ec.edu", "+1234567895", "2024", "Mechanical Engineering"},
	{1, "EC002", "Grace Lee", "grace.lee@ec.edu", "+1234567896", "2023", "Electrical Engineering"},
	{1, "EC003", "Henry Taylor", "henry.taylor@ec.edu", "+1234567897", "2024", "Civil Engineering"},
	{1, "EC004", "Ivy Chen", "ivy.chen@ec.edu", "+1234567898", "2022", "Computer Engineering"},
	{1, "EC005", "Jack Anderson", "jack.anderson@ec.edu", "+1234567899", "2024", "Aerospace Engineering"},
	{2, "BS001", "Kate Martinez", "kate.martinez@bs.edu", "+1234567800", "2024", "Business Administration"},
	{2, "BS002", "Liam Thompson", "liam.thompson@bs.edu", "+1234567801", "2023", "Marketing"},
	{2, "BS003", "Maya Rodriguez", "maya.rodriguez@bs.edu", "+1234567802", "2024", "Finance"},
	{2, "BS004", "Noah Garcia", "noah.garcia@bs.edu", "+1234567803", "2022", "Management"},
	{2, "BS005", "Olivia White", "olivia.white@bs.edu", "+1234567804", "2024", "Entrepreneurship"},
}

var events = []eventSeed{
	{0, "AI & Machine Learning Workshop", "Hands-on workshop covering the fundamentals of AI and ML", "workshop", 14, 8, "Tech Lab 101", 30},
	{0, "Hackathon 2026", "48-hour coding competition with exciting prizes", "hackathon", 19, 48, "Main Auditorium", 100},
	{0, "Tech Talk: Future of Web Development", "Industry expert discussing modern web technologies", "tech_talk", 24, 2, "Conference Room A", 50},
	{0, "TechFest 2026", "Annual technology festival with exhibitions and competitions", "fest", 34, 72, "Campus Grounds", 500},
	{0, "Data Science Seminar", "Advanced topics in data science and analytics", "seminar", 39, 2, "Lecture Hall 1", 80},
	{1, "Robotics Workshop", "Build and program your own robot", "workshop", 17, 8, "Engineering Lab", 25},
	{1, "Engineering Design Competition", "Design innovative solutions for real-world problems", "hackathon", 27, 36, "Design Studio", 60},
	{1, "Tech Talk: Sustainable Engineering", "Green technologies and sustainable engineering practices", "tech_talk", 31, 2, "Auditorium B", 100},
	{1, "Engineering Expo", "Showcase of student projects and innovations", "fest", 41, 9, "Exhibition Hall", 200},
	{1, "Advanced Materials Seminar", "Latest developments in materials science", "seminar", 44, 2, "Materials Lab", 40},
	{2, "Startup Pitch Workshop", "Learn how to pitch your business ideas effectively", "workshop", 21, 6, "Business Center", 35},
	{2, "Business Case Competition", "Solve real business challenges in a competitive environment", "hackathon", 30, 33, "Case Study Room", 40},
	{2, "Tech Talk: Digital Marketing Trends", "Latest trends in digital marketing and social media", "tech_talk", 37, 2, "Marketing Lab", 60},
	{2, "Business Fest 2026", "Networking event with industry professionals", "fest", 47, 11, "Convention Center", 300},
	{2, "Financial Markets Seminar", "Understanding global financial markets", "seminar", 51, 2, "Finance Lab", 50},
}

var feedbackComments = []string{
	"Great event! Learned a lot.",
	"Very informative and well-organized.",
	"Excellent speakers and content.",
	"Could be better organized.",
	"Amazing experience!",
	"Good event, but too long.",
	"Perfect timing and location.",
	"Needs more interactive sessions.",
	"Outstanding presentation!",
	"Good content, but room was too small.",
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8080/api", "服务接口前缀")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	client = resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	fmt.Println("seeding colleges...")
	collegeIDs := make([]uint, len(colleges))
	for i, c := range colleges {
		data, err := post("/colleges", c)
		if err != nil {
			fail(err)
		}
		collegeIDs[i] = createdID(data)
	}

	fmt.Println("seeding students...")
	type studentRef struct {
		id         uint
		collegeIdx int
	}
	studentRefs := make([]studentRef, 0, len(students))
	for _, s := range students {
		data, err := post("/students", map[string]any{
			"college_id": collegeIDs[s.CollegeIdx],
			"student_id": s.StudentID,
			"name":       s.Name,
			"email":      s.Email,
			"phone":      s.Phone,
			"year":       s.Year,
			"department": s.Department,
		})
		if err != nil {
			fail(err)
		}
		studentRefs = append(studentRefs, studentRef{createdID(data), s.CollegeIdx})
	}

	fmt.Println("seeding events...")
	type eventRef struct {
		id         uint
		collegeIdx int
	}
	eventRefs := make([]eventRef, 0, len(events))
	now := time.Now()
	for _, e := range events {
		start := now.AddDate(0, 0, e.DaysFromNow)
		end := start.Add(time.Duration(e.DurationHours) * time.Hour)
		data, err := post("/events", map[string]any{
			"college_id":       collegeIDs[e.CollegeIdx],
			"title":            e.Title,
			"description":      e.Description,
			"event_type":       e.EventType,
			"start_date":       start.Format(time.RFC3339),
			"end_date":         end.Format(time.RFC3339),
			"location":         e.Location,
			"max_participants": e.MaxParticipants,
		})
		if err != nil {
			fail(err)
		}
		eventRefs = append(eventRefs, eventRef{createdID(data), e.CollegeIdx})
	}

	// 每个学生在本学院活动里随机报 2-4 个，70% 签到，签到者 60% 留反馈
	fmt.Println("seeding registrations, attendance and feedback...")
	var regCount, attCount, fbCount int
	for _, s := range studentRefs {
		var own []eventRef
		for _, e := range eventRefs {
			if e.collegeIdx == s.collegeIdx {
				own = append(own, e)
			}
		}
		rng.Shuffle(len(own), func(i, j int) { own[i], own[j] = own[j], own[i] })
		n := 2 + rng.Intn(3)
		if n > len(own) {
			n = len(own)
		}
		for _, e := range own[:n] {
			if _, err := post("/registrations", map[string]any{
				"event_id":   e.id,
				"student_id": s.id,
			}); err != nil {
				fail(err)
			}
			regCount++

			if rng.Float64() >= 0.7 {
				continue
			}
			if _, err := post("/attendance", map[string]any{
				"event_id":   e.id,
				"student_id": s.id,
				"status":     "present",
			}); err != nil {
				fail(err)
			}
			attCount++

			if rng.Float64() >= 0.6 {
				continue
			}
			if _, err := post("/feedback", map[string]any{
				"event_id":   e.id,
				"student_id": s.id,
				"rating":     1 + rng.Intn(5),
				"comment":    feedbackComments[rng.Intn(len(feedbackComments))],
			}); err != nil {
				fail(err)
			}
			fbCount++
		}
	}

	fmt.Println("seeding completed:")
	fmt.Printf("  colleges:      %d\n", len(collegeIDs))
	fmt.Printf("  students:      %d\n", len(studentRefs))
	fmt.Printf("  events:        %d\n", len(eventRefs))
	fmt.Printf("  registrations: %d\n", regCount)
	fmt.Printf("  attendance:    %d\n", attCount)
	fmt.Printf("  feedback:      %d\n", fbCount)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "seed failed:", err)
	os.Exit(1)
}
