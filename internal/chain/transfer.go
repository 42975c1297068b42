package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/els/internal/config"
	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// 原生转账的固定 gas 上限
const transferGasLimit = 21000

// Client 链上转账客户端，用平台托管账户发送原生代币
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	from       common.Address
	chainId    *big.Int
}

// Init 按配置构造转账能力
//
// chain.enabled 关闭时返回只记账的空实现，便于本地与测试环境运行
func Init(cfg config.ChainConfig) (escrow.Transfer, error) {
	if !cfg.Enabled {
		logger.Info("Chain transfer disabled, using dry-run sender")
		return DryRunSender{}, nil
	}

	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{
		client:     client,
		privateKey: privateKey,
		from:       crypto.PubkeyToAddress(privateKey.PublicKey),
		chainId:    big.NewInt(cfg.ChainId),
	}, nil
}

// Transfer 从托管账户向目标地址发送 amount（最小单位）
func (c *Client) Transfer(to string, amount int64) error {
	if !common.IsHexAddress(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}

	ctx := context.Background()
	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return fmt.Errorf("failed to fetch nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, common.HexToAddress(to), big.NewInt(amount), transferGasLimit, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Info("Sent transfer tx %s: %d -> %s", signedTx.Hash().Hex(), amount, to)
	return nil
}

// DryRunSender 空实现，只打日志不发交易
type DryRunSender struct{}

// Transfer 记录一笔假转账
func (DryRunSender) Transfer(to string, amount int64) error {
	logger.Info("Dry-run transfer: %d -> %s", amount, to)
	return nil
}
