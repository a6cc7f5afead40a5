package planner

import "encoding/json"

// colorsPlanJSON is a model response for the "Colors" topic with three
// procedure steps.
func colorsPlanJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Khám phá màu sắc",
		"ageGroup": "Mẫu giáo nhỡ (4-5 tuổi)",
		"method": "STEAM",
		"developmentField": "Lĩnh vực phát triển nhận thức",
		"teacherName": "",
		"className": "",
		"schoolName": "",
		"teachingDate": "",
		"location": "",
		"objectives": {
			"knowledge": ["Trẻ nhận biết ba màu cơ bản: đỏ, vàng, xanh"],
			"skills": ["Trẻ pha trộn hai màu để tạo màu mới"],
			"attitude": ["Trẻ hứng thú tham gia hoạt động"]
		},
		"preparation": {
			"teacher": ["Màu nước", "Cốc nhựa trong"],
			"students": ["Tạp dề", "Cọ vẽ"]
		},
		"procedure": [
			{"step": "Ổn định tổ chức", "teacherActivity": "Cô hát bài Màu sắc", "studentActivity": "Trẻ hát cùng cô"},
			{"step": "Khám phá", "teacherActivity": "Cô hướng dẫn pha màu", "studentActivity": "Trẻ thực hành pha màu"},
			{"step": "Kết thúc", "teacherActivity": "Cô nhận xét", "studentActivity": "Trẻ chia sẻ sản phẩm"}
		]
	}`)
}

func refinedPlanJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Khám phá màu sắc qua trò chơi",
		"ageGroup": "Mẫu giáo nhỡ (4-5 tuổi)",
		"method": "STEAM",
		"developmentField": "Lĩnh vực phát triển nhận thức",
		"teacherName": "",
		"className": "Lớp Chồi 2",
		"schoolName": "",
		"teachingDate": "",
		"location": "",
		"objectives": {
			"knowledge": ["Trẻ nhận biết màu đỏ, vàng, xanh"],
			"skills": ["Trẻ pha màu"],
			"attitude": ["Trẻ vui vẻ"]
		},
		"preparation": {"teacher": ["Màu nước"], "students": []},
		"procedure": [
			{"step": "Trò chơi khởi động", "teacherActivity": "Cô tổ chức trò chơi", "studentActivity": "Trẻ chơi"},
			{"step": "Khám phá", "teacherActivity": "Cô hướng dẫn", "studentActivity": "Trẻ thực hành"},
			{"step": "Kết thúc", "teacherActivity": "Cô nhận xét", "studentActivity": "Trẻ lắng nghe"}
		]
	}`)
}
