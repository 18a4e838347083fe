package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch 监听配置文件变化，解析成功后替换 Conf 并回调
// 解析失败时保留旧配置，错误交给 onError
func Watch(onChange func(*TrainerConfiguration), onError func(error)) {
	mu.Lock()
	v := current
	mu.Unlock()
	if v == nil || v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(in fsnotify.Event) {
		if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		mu.Lock()
		Conf = cfg
		mu.Unlock()
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}
