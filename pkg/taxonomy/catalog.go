package taxonomy

// ErrorInfo is the display metadata the presentation layer shows for a category.
type ErrorInfo struct {
	Category ErrorCategory `json:"category"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Remedies []string      `json:"remedies"`
	Severity Severity      `json:"severity"`
}

type copyText struct {
	title    string
	message  string
	remedies []string
}

var catalog = map[ErrorCategory]copyText{
	NoFaceDetected: {
		title:   "No face found",
		message: "We couldn't find a face in this photo.",
		remedies: []string{
			"Face the camera directly",
			"Make sure your whole face is inside the frame",
			"Use a photo of a real person, not an illustration",
		},
	},
	MultipleFaces: {
		title:   "More than one face",
		message: "This photo contains several faces. Personal color analysis needs exactly one.",
		remedies: []string{
			"Take the photo alone",
			"Crop the photo so only your face is visible",
		},
	},
	FaceTooSmall: {
		title:   "Face is too small",
		message: "Your face takes up too little of the photo to read skin tone reliably.",
		remedies: []string{
			"Move closer to the camera",
			"Crop the photo around your face",
		},
	},
	FacePartiallyVisible: {
		title:   "Face is cut off",
		message: "Part of your face is outside the photo.",
		remedies: []string{
			"Center your face in the frame",
			"Keep your forehead and chin inside the photo",
		},
	},
	FaceTooTilted: {
		title:   "Face is tilted",
		message: "Your head is turned or tilted too far.",
		remedies: []string{
			"Look straight at the camera",
			"Keep your head level",
		},
	},
	TooDark: {
		title:   "Photo is too dark",
		message: "There isn't enough light to see your true skin tone.",
		remedies: []string{
			"Face a window or another source of daylight",
			"Turn on more lights in the room",
			"Avoid standing with a bright light behind you",
		},
	},
	TooBright: {
		title:   "Photo is too bright",
		message: "Strong light is washing out your skin tone.",
		remedies: []string{
			"Move out of direct sunlight",
			"Turn off the flash",
			"Use soft, indirect light",
		},
	},
	PoorLighting: {
		title:   "Lighting is too flat",
		message: "The light is dim and flat, so colors can't be told apart.",
		remedies: []string{
			"Use natural daylight from the front",
			"Add a second light source",
		},
	},
	HarshShadows: {
		title:   "Strong shadows",
		message: "Deep shadows fall across your face and hide its color.",
		remedies: []string{
			"Face the light source directly",
			"Use diffused light instead of a single lamp",
			"Avoid overhead lighting",
		},
	},
	ImageBlurry: {
		title:   "Photo is blurry",
		message: "The photo is out of focus.",
		remedies: []string{
			"Hold the camera steady",
			"Tap your face on screen to focus before shooting",
			"Clean the camera lens",
		},
	},
	LowResolution: {
		title:   "Resolution is too low",
		message: "The photo doesn't have enough detail.",
		remedies: []string{
			"Use the original photo instead of a screenshot",
			"Use the rear camera if possible",
		},
	},
	PoorQuality: {
		title:   "Photo quality is too low",
		message: "Compression or noise makes the photo hard to analyze.",
		remedies: []string{
			"Upload the original file",
			"Take a new photo in good light",
		},
	},
	TooFar: {
		title:   "Too far from the camera",
		message: "You're too far away for your features to be read.",
		remedies: []string{
			"Move closer so your face fills about half the frame",
		},
	},
	TooClose: {
		title:   "Too close to the camera",
		message: "You're so close that part of your face is distorted or cut off.",
		remedies: []string{
			"Hold the camera at arm's length",
		},
	},
	FaceCovered: {
		title:   "Face is covered",
		message: "Something is covering part of your face.",
		remedies: []string{
			"Move hair away from your face",
			"Remove hats or hands from in front of your face",
		},
	},
	SunglassesDetected: {
		title:   "Sunglasses detected",
		message: "Sunglasses hide your eye color and change the light on your face.",
		remedies: []string{
			"Take off your sunglasses",
		},
	},
	MaskDetected: {
		title:   "Mask detected",
		message: "A mask hides most of your skin tone.",
		remedies: []string{
			"Remove your mask for the photo",
		},
	},
	UnsupportedFormat: {
		title:   "Unsupported file type",
		message: "This file type can't be analyzed.",
		remedies: []string{
			"Upload a JPEG, PNG or WebP image",
		},
	},
	CorruptedImage: {
		title:   "File can't be opened",
		message: "The image file appears to be damaged.",
		remedies: []string{
			"Export the photo again and retry",
			"Take a new photo",
		},
	},
	FileTooLarge: {
		title:   "File is too large",
		message: "The image is larger than the upload limit.",
		remedies: []string{
			"Resize the photo before uploading",
			"Export the image at a lower quality setting",
		},
	},
	ProcessingError: {
		title:   "Something went wrong",
		message: "We couldn't process the photo right now.",
		remedies: []string{
			"Try again in a moment",
			"Check your internet connection",
		},
	},
	UnknownError: {
		title:   "Unexpected problem",
		message: "An unexpected problem occurred while checking your photo.",
		remedies: []string{
			"Try again with a different photo",
		},
	},
}

var catalogKo = map[ErrorCategory]copyText{
	NoFaceDetected: {
		title:    "얼굴을 찾을 수 없어요",
		message:  "사진에서 얼굴을 찾지 못했어요.",
		remedies: []string{"카메라를 정면으로 바라봐 주세요", "얼굴 전체가 화면 안에 들어오게 해 주세요", "그림이 아닌 실제 인물 사진을 사용해 주세요"},
	},
	MultipleFaces: {
		title:    "얼굴이 여러 개예요",
		message:  "사진에 여러 사람이 있어요. 퍼스널 컬러 진단에는 한 사람의 얼굴만 필요해요.",
		remedies: []string{"혼자 찍은 사진을 사용해 주세요", "내 얼굴만 보이도록 사진을 잘라 주세요"},
	},
	FaceTooSmall: {
		title:    "얼굴이 너무 작아요",
		message:  "사진에서 얼굴이 차지하는 부분이 작아 피부 톤을 정확히 읽기 어려워요.",
		remedies: []string{"카메라에 더 가까이 다가가 주세요", "얼굴 중심으로 사진을 잘라 주세요"},
	},
	FacePartiallyVisible: {
		title:    "얼굴이 잘렸어요",
		message:  "얼굴 일부가 사진 밖으로 벗어났어요.",
		remedies: []string{"얼굴을 화면 가운데에 맞춰 주세요", "이마와 턱이 모두 보이게 해 주세요"},
	},
	FaceTooTilted: {
		title:    "얼굴이 기울어졌어요",
		message:  "고개가 너무 많이 돌아가거나 기울어졌어요.",
		remedies: []string{"카메라를 정면으로 바라봐 주세요", "고개를 똑바로 세워 주세요"},
	},
	TooDark: {
		title:    "사진이 너무 어두워요",
		message:  "빛이 부족해서 실제 피부 톤을 확인하기 어려워요.",
		remedies: []string{"창문이나 자연광을 마주 보고 찍어 주세요", "방의 조명을 더 켜 주세요", "밝은 빛을 등지고 서지 마세요"},
	},
	TooBright: {
		title:    "사진이 너무 밝아요",
		message:  "강한 빛 때문에 피부 톤이 하얗게 날아갔어요.",
		remedies: []string{"직사광선을 피해 주세요", "플래시를 꺼 주세요", "부드러운 간접 조명을 사용해 주세요"},
	},
	PoorLighting: {
		title:    "조명이 너무 밋밋해요",
		message:  "빛이 어둡고 밋밋해서 색을 구분하기 어려워요.",
		remedies: []string{"정면에서 들어오는 자연광을 사용해 주세요", "조명을 하나 더 추가해 주세요"},
	},
	HarshShadows: {
		title:    "그림자가 강해요",
		message:  "얼굴에 짙은 그림자가 져서 색이 가려졌어요.",
		remedies: []string{"빛이 들어오는 방향을 마주 봐 주세요", "조명 하나 대신 확산된 빛을 사용해 주세요", "머리 위 조명을 피해 주세요"},
	},
	ImageBlurry: {
		title:    "사진이 흐릿해요",
		message:  "사진의 초점이 맞지 않았어요.",
		remedies: []string{"카메라를 흔들리지 않게 잡아 주세요", "촬영 전에 화면의 얼굴을 눌러 초점을 맞춰 주세요", "카메라 렌즈를 닦아 주세요"},
	},
	LowResolution: {
		title:    "해상도가 너무 낮아요",
		message:  "사진의 디테일이 충분하지 않아요.",
		remedies: []string{"스크린샷 대신 원본 사진을 사용해 주세요", "가능하면 후면 카메라를 사용해 주세요"},
	},
	PoorQuality: {
		title:    "사진 화질이 낮아요",
		message:  "압축이나 노이즈 때문에 사진을 분석하기 어려워요.",
		remedies: []string{"원본 파일을 올려 주세요", "밝은 곳에서 새로 찍어 주세요"},
	},
	TooFar: {
		title:    "카메라에서 너무 멀어요",
		message:  "너무 멀리 있어서 얼굴을 읽기 어려워요.",
		remedies: []string{"얼굴이 화면의 절반 정도를 채우도록 가까이 와 주세요"},
	},
	TooClose: {
		title:    "카메라에 너무 가까워요",
		message:  "너무 가까워서 얼굴 일부가 왜곡되거나 잘렸어요.",
		remedies: []string{"팔을 뻗은 거리에서 카메라를 들어 주세요"},
	},
	FaceCovered: {
		title:    "얼굴이 가려졌어요",
		message:  "무언가가 얼굴 일부를 가리고 있어요.",
		remedies: []string{"머리카락을 얼굴에서 치워 주세요", "모자나 손이 얼굴 앞에 오지 않게 해 주세요"},
	},
	SunglassesDetected: {
		title:    "선글라스가 감지됐어요",
		message:  "선글라스가 눈동자 색을 가리고 얼굴에 닿는 빛을 바꿔요.",
		remedies: []string{"선글라스를 벗어 주세요"},
	},
	MaskDetected: {
		title:    "마스크가 감지됐어요",
		message:  "마스크가 피부 톤 대부분을 가려요.",
		remedies: []string{"촬영할 때 마스크를 벗어 주세요"},
	},
	UnsupportedFormat: {
		title:    "지원하지 않는 파일 형식이에요",
		message:  "이 파일 형식은 분석할 수 없어요.",
		remedies: []string{"JPEG, PNG 또는 WebP 이미지를 올려 주세요"},
	},
	CorruptedImage: {
		title:    "파일을 열 수 없어요",
		message:  "이미지 파일이 손상된 것 같아요.",
		remedies: []string{"사진을 다시 내보낸 뒤 시도해 주세요", "사진을 새로 찍어 주세요"},
	},
	FileTooLarge: {
		title:    "파일이 너무 커요",
		message:  "이미지가 업로드 용량 제한보다 커요.",
		remedies: []string{"사진 크기를 줄여서 올려 주세요", "더 낮은 화질로 이미지를 내보내 주세요"},
	},
	ProcessingError: {
		title:    "문제가 발생했어요",
		message:  "지금은 사진을 처리할 수 없어요.",
		remedies: []string{"잠시 후 다시 시도해 주세요", "인터넷 연결을 확인해 주세요"},
	},
	UnknownError: {
		title:    "예상하지 못한 문제",
		message:  "사진을 확인하는 중 예상하지 못한 문제가 발생했어요.",
		remedies: []string{"다른 사진으로 다시 시도해 주세요"},
	},
}

func copyFor(loc Locale) map[ErrorCategory]copyText {
	if loc == Korean {
		return catalogKo
	}
	return catalog
}

// Lookup returns the English display metadata for c.
func Lookup(c ErrorCategory) (ErrorInfo, bool) {
	return LookupLocale(c, English)
}

// LookupLocale returns the display metadata for c in loc.
func LookupLocale(c ErrorCategory, loc Locale) (ErrorInfo, bool) {
	text, ok := copyFor(loc)[c]
	if !ok {
		return ErrorInfo{}, false
	}
	remedies := make([]string, len(text.remedies))
	copy(remedies, text.remedies)
	return ErrorInfo{
		Category: c,
		Title:    text.title,
		Message:  text.message,
		Remedies: remedies,
		Severity: c.Severity(),
	}, true
}

// MustLookup returns the English metadata for c, falling back to UNKNOWN_ERROR.
func MustLookup(c ErrorCategory) ErrorInfo {
	return MustLookupLocale(c, English)
}

// MustLookupLocale is MustLookup in loc.
func MustLookupLocale(c ErrorCategory, loc Locale) ErrorInfo {
	if info, ok := LookupLocale(c, loc); ok {
		return info
	}
	info, _ := LookupLocale(UnknownError, loc)
	return info
}

// Catalog returns the English metadata of every category in canonical order.
func Catalog() []ErrorInfo {
	return CatalogLocale(English)
}

// CatalogLocale returns the metadata of every category in loc.
func CatalogLocale(loc Locale) []ErrorInfo {
	infos := make([]ErrorInfo, 0, len(order))
	for _, c := range order {
		infos = append(infos, MustLookupLocale(c, loc))
	}
	return infos
}
