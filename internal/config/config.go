package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Ingest IngestConfig `toml:"ingest"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 데이터 저장소 설정
type DataConfig struct {
	RepositoryDir string `toml:"repository_dir"` // 원본 엑셀 저장소
	DatabasePath  string `toml:"database_path"`
}

// IngestConfig 수집 설정
type IngestConfig struct {
	SeniorAge int `toml:"senior_age"` // 고령자 기준 나이
}

// 종류별 하위 디렉터리 (현장 사무실 공유폴더 구조 그대로)
const (
	attendanceSubdir = "01_attendance"
	riskSubdir       = "02_risk_assessment"
	tbmSubdir        = "03_tbm"
)

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    3002,
			DevMode: false,
		},
		Data: DataConfig{
			RepositoryDir: "data_repository",
			DatabasePath:  filepath.Join("data", "safety.db"),
		},
		Ingest: IngestConfig{
			SeniorAge: 65,
		},
	}
}

// AttendanceDir 출퇴근 파일 디렉터리
func (c *AppConfig) AttendanceDir() string {
	return filepath.Join(c.Data.RepositoryDir, attendanceSubdir)
}

// RiskDir 위험성평가 파일 디렉터리
func (c *AppConfig) RiskDir() string {
	return filepath.Join(c.Data.RepositoryDir, riskSubdir)
}

// TbmDir TBM 파일 디렉터리
func (c *AppConfig) TbmDir() string {
	return filepath.Join(c.Data.RepositoryDir, tbmSubdir)
}

// GetExeDir 실행 파일이 있는 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig config.toml 로드. 파일이 없으면 기본 설정을 쓴다.
// 환경 변수 HJT_DATA_DIR / HJT_DB_PATH 가 최우선으로 덮어쓴다.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("HJT_DATA_DIR"); v != "" {
		config.Data.RepositoryDir = v
	}
	if v := os.Getenv("HJT_DB_PATH"); v != "" {
		config.Data.DatabasePath = v
	}
}

// SaveConfig 설정을 config.toml 에 저장
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}
