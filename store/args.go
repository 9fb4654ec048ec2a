package store

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeArgs 将配置文件中 store.args 的原始结构解码到具体实现的配置上, 字段名沿用 json tag
func DecodeArgs(args interface{}, out interface{}) error {
	if args == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("decode store args failed, err:%w", err)
	}
	return nil
}
