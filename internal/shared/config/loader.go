package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load 加载配置文件并反序列化到 out，同时监听文件变更热更新。
//
// 约定：
// 1) 传入 relPath（相对/绝对路径）则优先使用；
// 2) 相对路径从当前目录开始向上逐级查找（方便在 cmd/xxx 下直接运行）。
func Load(relPath string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	var configPath string
	if filepath.IsAbs(relPath) {
		configPath = relPath
	} else {
		configPath = findUpward(curDir, relPath)
	}
	load(configPath, out)
}

func findUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic(fmt.Sprintf("config file not exist, searched %s from: %s", relPath, startDir))
		}
		dir = parent
	}
}

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		// todo 确认热更新时的并发读取问题
		if err := v.Unmarshal(out); err != nil {
			panic(fmt.Errorf("viper unmarshal change config data: cast exception, err=%v", err))
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
