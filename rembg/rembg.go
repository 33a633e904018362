// Package rembg 背景去除：输入一张图片，返回背景透明的图片
package rembg

import (
	"context"
	"image"
	"image/draw"
)

type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
