package classifier

import "go-photo-validator/pkg/taxonomy"

// Rule maps a category to the keywords that identify it in remote error text.
// Keywords are lower-case; English and Korean forms live side by side.
type Rule struct {
	Category taxonomy.ErrorCategory
	Keywords []string
}

// infrastructureSignals are checked before any rule. They describe transport
// failures rather than photo problems.
var infrastructureSignals = []string{
	"timeout",
	"timed out",
	"time out",
	"connection refused",
	"econnrefused",
	"econnreset",
	"connection reset",
	"network error",
	"socket hang up",
	"시간 초과",
	"시간초과",
	"연결 거부",
	"연결이 거부",
	"네트워크 오류",
}

// DefaultRules is the ordered rule list. Earlier rules win when a message
// mentions several problems.
var DefaultRules = []Rule{
	{taxonomy.NoFaceDetected, []string{
		"no face", "face not detected", "face not found", "could not detect face",
		"couldn't detect face", "unable to detect face", "no faces",
		"얼굴을 찾을 수 없", "얼굴이 감지되지", "얼굴을 감지할 수 없", "얼굴 없음", "얼굴이 없",
	}},
	{taxonomy.MultipleFaces, []string{
		"multiple faces", "more than one face", "several faces",
		"여러 얼굴", "얼굴이 여러", "두 명 이상", "여러 명",
	}},
	{taxonomy.FaceTooSmall, []string{
		"face too small", "face is too small", "face size", "small face",
		"얼굴이 너무 작", "얼굴 크기",
	}},
	{taxonomy.FacePartiallyVisible, []string{
		"partially visible", "partial face", "face cut off", "cut off", "cropped face",
		"out of frame", "얼굴 일부", "얼굴이 잘", "잘려",
	}},
	{taxonomy.FaceTooTilted, []string{
		"tilted", "face angle", "head pose", "rotated", "not frontal",
		"기울", "각도", "정면",
	}},
	{taxonomy.TooFar, []string{
		"too far", "너무 멀",
	}},
	{taxonomy.TooClose, []string{
		"too close", "너무 가까",
	}},
	{taxonomy.SunglassesDetected, []string{
		"sunglasses", "sun glasses", "선글라스",
	}},
	{taxonomy.MaskDetected, []string{
		"mask", "마스크",
	}},
	{taxonomy.FaceCovered, []string{
		"covered", "obstructed", "occluded", "occlusion", "hair covering", "obstruction",
		"가려", "가림",
	}},
	{taxonomy.TooDark, []string{
		"too dark", "underexposed", "under-exposed", "dark image", "insufficient light",
		"너무 어둡", "어둡", "어두워", "어두운 사진", "어두운 이미지",
	}},
	{taxonomy.TooBright, []string{
		"too bright", "overexposed", "over-exposed", "washed out",
		"너무 밝", "과다 노출", "노출 과다",
	}},
	{taxonomy.HarshShadows, []string{
		"shadow", "그림자", "음영",
	}},
	{taxonomy.PoorLighting, []string{
		"lighting", "illumination", "uneven light", "poor light",
		"조명", "빛이",
	}},
	{taxonomy.ImageBlurry, []string{
		"blur", "out of focus", "not sharp", "motion",
		"흐릿", "흐림", "흔들", "초점",
	}},
	{taxonomy.LowResolution, []string{
		"resolution", "too small image", "image too small", "image is too small",
		"해상도",
	}},
	{taxonomy.FileTooLarge, []string{
		"too large", "file size", "payload too large", "request entity too large",
		"용량", "파일 크기",
	}},
	{taxonomy.UnsupportedFormat, []string{
		"unsupported format", "unsupported file", "unsupported image", "file format",
		"invalid format", "not supported", "mime type",
		"지원하지 않는", "지원되지 않는", "형식",
	}},
	{taxonomy.CorruptedImage, []string{
		"corrupt", "damaged", "invalid image", "cannot decode", "failed to decode", "unreadable",
		"손상", "깨진",
	}},
	{taxonomy.PoorQuality, []string{
		"quality", "noisy", "noise", "compression",
		"품질", "화질",
	}},
	{taxonomy.ProcessingError, []string{
		"processing", "server error", "internal error", "service unavailable", "bad gateway",
		"처리", "서버",
	}},
}
