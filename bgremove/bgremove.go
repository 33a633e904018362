// Package bgremove 读取一张图片，去除背景后写到指定路径
package bgremove

import (
	"context"
	"errors"
	"fmt"

	"github.com/chaos-io/removebg/rembg"
	"github.com/chaos-io/removebg/util"
)

var ErrInputNotFound = errors.New("input file not found")

type Remover struct {
	RemBG rembg.Remover
}

func NewRemover(remBG rembg.Remover) *Remover {
	return &Remover{
		RemBG: remBG,
	}
}

// Run 检查输入 -> 读取 -> 去背景 -> 按输出扩展名保存
//
// 输入不存在时返回 ErrInputNotFound，其余失败统一包装后返回。
func (r *Remover) Run(ctx context.Context, inputPath, outputPath string) error {
	defer util.Trace("remove background")()

	if !util.Exists(inputPath) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}

	input, err := util.OpenImage(inputPath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}

	output, err := r.RemBG.Remove(ctx, input)
	if err != nil {
		return fmt.Errorf("remove background: %w", err)
	}

	if err := util.SaveImage(output, outputPath); err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	return nil
}
